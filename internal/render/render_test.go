package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/xfsconv/pkg/xfs"
)

func sampleContainer() *xfs.Container {
	child := &xfs.Structure{Hash: 2, Fields: []*xfs.Field{
		{Name: "label", Type: 0x0e, Length: 1, Kind: xfs.KindValues, Values: []string{"a<b&c"}},
	}}
	return &xfs.Container{Structures: []*xfs.Structure{{
		Hash: 1,
		Fields: []*xfs.Field{
			{Name: "speed", Type: 0x0c, Length: 4, Kind: xfs.KindValues, Values: []string{"3.5"}},
			{Name: "kids", Type: 0x01, Length: 8, Kind: xfs.KindStructures, Structures: []*xfs.Structure{child}},
			{Name: "refs", Type: 0x8080, Kind: xfs.KindTypePaths, TypePaths: []xfs.TypePath{
				{TypeName: "rAI", Paths: []string{"enemy", "boss"}},
			}},
			{Name: "pos", Type: 0x14, Length: 16, Kind: xfs.KindVector, Vector: &xfs.Vector{A: 1, B: -0.5, C: float32(math.Inf(1)), D: 1e20}},
			{Name: "tint", Type: 0x15, Length: 16, Kind: xfs.KindColor, Color: &xfs.Color{A: 255, B: 128, C: 64, D: 0}},
			{Name: "odd", Type: 0x77},
		},
	}}}
}

func TestWriteXML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteXML(&buf, sampleContainer()); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}

	want := strings.Join([]string{
		`<ArrayOfStructure>`,
		`	<Structure>`,
		`		<data name="speed" type="12" dataLength="4">`,
		`			<Value>3.5</Value>`,
		`		</data>`,
		`		<data name="kids" type="1" dataLength="8">`,
		`			<XFS_structure>`,
		`				<data name="label" type="14" dataLength="1">`,
		`					<Value>a&lt;b&amp;c</Value>`,
		`				</data>`,
		`			</XFS_structure>`,
		`		</data>`,
		`		<data name="refs" type="32896" dataLength="0">`,
		`			<TypePath typeName="rAI">`,
		`				<Paths>enemy</Paths>`,
		`				<Paths>boss</Paths>`,
		`			</TypePath>`,
		`		</data>`,
		`		<data name="pos" type="20" dataLength="16">`,
		`			<Vector a="1" b="-0.5" c="INF" d="1E+20"></Vector>`,
		`		</data>`,
		`		<data name="tint" type="21" dataLength="16">`,
		`			<Color>`,
		`				<a>255</a>`,
		`				<b>128</b>`,
		`				<c>64</c>`,
		`				<d>0</d>`,
		`			</Color>`,
		`		</data>`,
		`		<data name="odd" type="119" dataLength="0"></data>`,
		`	</Structure>`,
		`</ArrayOfStructure>`,
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("xml mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteXMLEscaping(t *testing.T) {
	t.Parallel()

	c := &xfs.Container{Structures: []*xfs.Structure{{Fields: []*xfs.Field{
		{Name: "a\x01b", Type: 0x0e, Length: 1, Kind: xfs.KindValues, Values: []string{`it's "x"`}},
	}}}}
	var buf bytes.Buffer
	if err := WriteXML(&buf, c); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}

	for _, want := range []string{
		"name=\"a\uFFFDb\"",
		"<Value>it&#39;s &#34;x&#34;</Value>",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, buf.String())
		}
	}
}

func TestWriteXMLEmpty(t *testing.T) {
	t.Parallel()

	for _, c := range []*xfs.Container{nil, {}} {
		var buf bytes.Buffer
		if err := WriteXML(&buf, c); err != nil {
			t.Fatalf("WriteXML: %v", err)
		}
		if got := buf.String(); got != "<ArrayOfStructure></ArrayOfStructure>" {
			t.Fatalf("got %q", got)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Render(&buf, sampleContainer(), FormatJSON); err != nil {
		t.Fatalf("Render: %v", err)
	}
	var doc struct {
		Structures []struct {
			Hash   uint32           `json:"hash"`
			Fields []map[string]any `json:"fields"`
		} `json:"structures"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(doc.Structures) != 1 || doc.Structures[0].Hash != 1 {
		t.Fatalf("structures: %+v", doc.Structures)
	}
	speed := doc.Structures[0].Fields[0]
	if speed["name"] != "speed" || speed["dataLength"] != float64(4) {
		t.Fatalf("speed: %v", speed)
	}
	for _, f := range doc.Structures[0].Fields {
		if _, ok := f["Kind"]; ok {
			t.Fatalf("payload kind leaked into json: %v", f)
		}
	}
	if _, ok := doc.Structures[0].Fields[5]["values"]; ok {
		t.Fatal("unknown-tag field should carry no values")
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	c := sampleContainer()
	c.Structures[0].Fields[3].Vector.C = 2
	var buf bytes.Buffer
	if err := Render(&buf, c, FormatYAML); err != nil {
		t.Fatalf("Render: %v", err)
	}
	var got xfs.Container
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	fields := got.Structures[0].Fields
	if len(fields) != 6 {
		t.Fatalf("fields: got %d", len(fields))
	}
	if fields[1].Structures[0].Fields[0].Values[0] != "a<b&c" {
		t.Fatalf("nested value: %+v", fields[1].Structures[0].Fields[0])
	}
	if fields[2].TypePaths[0].Paths[1] != "boss" {
		t.Fatalf("type paths: %+v", fields[2].TypePaths)
	}
	if *fields[4].Color != (xfs.Color{A: 255, B: 128, C: 64}) {
		t.Fatalf("color: %+v", fields[4].Color)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"":      FormatXML,
		"xml":   FormatXML,
		" JSON": FormatJSON,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q): got %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestExtensionAndContentType(t *testing.T) {
	t.Parallel()

	if Extension("") != "xml" || Extension(FormatYAML) != "yaml" {
		t.Fatal("unexpected extension")
	}
	if !strings.HasPrefix(ContentType(FormatJSON), "application/json") {
		t.Fatalf("content type: %s", ContentType(FormatJSON))
	}
	if err := Render(&bytes.Buffer{}, &xfs.Container{}, Format("csv")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
