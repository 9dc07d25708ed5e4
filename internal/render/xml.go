package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"github.com/samcharles93/xfsconv/pkg/xfs"
)

// The XML document keeps the element and attribute names existing XFS
// tooling reads: a list of <Structure> elements, each holding <data> fields.
// Structure hashes are not part of this document.

type xmlDocument struct {
	XMLName    xml.Name       `xml:"ArrayOfStructure"`
	Structures []xmlStructure `xml:"Structure"`
}

type xmlStructure struct {
	Data []xmlData `xml:"data"`
}

type xmlData struct {
	Name   string `xml:"name,attr"`
	Type   uint16 `xml:"type,attr"`
	Length int16  `xml:"dataLength,attr"`

	Structures []xmlStructure `xml:"XFS_structure"`
	TypePaths  []xmlTypePath  `xml:"TypePath"`
	Values     []string       `xml:"Value"`
	Vector     *xmlVector     `xml:"Vector"`
	Color      *xmlColor      `xml:"Color"`
}

type xmlTypePath struct {
	TypeName string   `xml:"typeName,attr"`
	Paths    []string `xml:"Paths"`
}

type xmlVector struct {
	A string `xml:"a,attr"`
	B string `xml:"b,attr"`
	C string `xml:"c,attr"`
	D string `xml:"d,attr"`
}

type xmlColor struct {
	A uint32 `xml:"a"`
	B uint32 `xml:"b"`
	C uint32 `xml:"c"`
	D uint32 `xml:"d"`
}

// WriteXML writes c as a tab-indented XML document without a declaration.
// Text is escaped by encoding/xml: quotes become &#39; and &#34;, and bytes
// that are not valid XML characters become U+FFFD.
func WriteXML(w io.Writer, c *xfs.Container) error {
	doc := xmlDocument{}
	if c != nil {
		doc.Structures = toXMLStructures(c.Structures)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	return nil
}

func toXMLStructures(in []*xfs.Structure) []xmlStructure {
	if len(in) == 0 {
		return nil
	}
	out := make([]xmlStructure, len(in))
	for i, s := range in {
		out[i].Data = make([]xmlData, len(s.Fields))
		for j, f := range s.Fields {
			out[i].Data[j] = toXMLData(f)
		}
	}
	return out
}

func toXMLData(f *xfs.Field) xmlData {
	d := xmlData{Name: f.Name, Type: f.Type, Length: f.Length}
	switch f.Kind {
	case xfs.KindStructures:
		d.Structures = toXMLStructures(f.Structures)
	case xfs.KindTypePaths:
		d.TypePaths = make([]xmlTypePath, len(f.TypePaths))
		for i, tp := range f.TypePaths {
			d.TypePaths[i] = xmlTypePath{TypeName: tp.TypeName, Paths: tp.Paths}
		}
	case xfs.KindValues:
		d.Values = f.Values
	case xfs.KindVector:
		v := f.Vector
		d.Vector = &xmlVector{A: xmlFloat(v.A), B: xmlFloat(v.B), C: xmlFloat(v.C), D: xmlFloat(v.D)}
	case xfs.KindColor:
		c := f.Color
		d.Color = &xmlColor{A: c.A, B: c.B, C: c.C, D: c.D}
	}
	return d
}

// xmlFloat formats float attributes. Infinities use the XML Schema spelling.
func xmlFloat(v float32) string {
	switch {
	case math.IsInf(float64(v), 1):
		return "INF"
	case math.IsInf(float64(v), -1):
		return "-INF"
	}
	return xfs.FormatFloat(v)
}
