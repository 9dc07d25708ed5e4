package xfs

import (
	"math"
	"testing"
)

func TestOffsetTableLast(t *testing.T) {
	t.Parallel()

	if _, ok := OffsetTable(nil).Last(); ok {
		t.Fatal("empty table reported a last entry")
	}
	if last, ok := (OffsetTable{8, 40, 24}).Last(); !ok || last != 24 {
		t.Fatalf("got %d, %v", last, ok)
	}
}

func TestPayloadKindString(t *testing.T) {
	t.Parallel()

	want := map[PayloadKind]string{
		KindNone:       "none",
		KindStructures: "structures",
		KindTypePaths:  "type_paths",
		KindValues:     "values",
		KindVector:     "vector",
		KindColor:      "color",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d: got %q want %q", k, k.String(), s)
		}
	}
	if PayloadKind(99).String() != "none" {
		t.Fatal("unknown kind should render as none")
	}
}

func TestHeaderMagicString(t *testing.T) {
	t.Parallel()

	h := Header{Magic: [4]byte{'X', 'F', 'S', 0}}
	if h.MagicString() != "XFS" {
		t.Fatalf("got %q", h.MagicString())
	}
	if (Header{}).MagicString() != "" {
		t.Fatal("zero magic should be empty")
	}
}

func TestFieldTag(t *testing.T) {
	t.Parallel()

	if tag := (&Field{Type: 0x0102}).Tag(); tag != TagInt32Alt {
		t.Fatalf("got %#x", tag)
	}
	if tag := (&Field{Type: TypeTypePath}).Tag(); tag != 0x80 {
		t.Fatalf("got %#x", tag)
	}
}

func TestVectorMarshalJSON(t *testing.T) {
	t.Parallel()

	v := Vector{A: 1.5, B: -2, C: float32(math.Inf(1)), D: float32(math.NaN())}
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if got := string(b); got != `{"a":1.5,"b":-2,"c":"Infinity","d":"NaN"}` {
		t.Fatalf("got %s", got)
	}
}
