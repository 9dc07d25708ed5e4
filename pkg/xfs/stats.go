package xfs

import "sort"

// Stats summarizes a decoded container.
type Stats struct {
	TopLevel    int            `json:"topLevel" yaml:"topLevel"`
	Structures  int            `json:"structures" yaml:"structures"`
	Fields      int            `json:"fields" yaml:"fields"`
	MaxDepth    int            `json:"maxDepth" yaml:"maxDepth"`
	Names       int            `json:"distinctNames" yaml:"distinctNames"`
	ByType      map[uint16]int `json:"byType" yaml:"byType"`
	ByKind      map[string]int `json:"byKind" yaml:"byKind"`
	Diagnostics int            `json:"diagnostics" yaml:"diagnostics"`
}

// Summarize walks c and counts structures, fields, types and nesting.
func Summarize(c *Container) Stats {
	st := Stats{
		ByType: make(map[uint16]int),
		ByKind: make(map[string]int),
	}
	if c == nil {
		return st
	}
	names := make(map[string]struct{})

	Walk(c, func(s *Structure, depth int) {
		st.Structures++
		st.MaxDepth = max(st.MaxDepth, depth)
		for _, f := range s.Fields {
			st.Fields++
			st.ByType[f.Type]++
			st.ByKind[f.Kind.String()]++
			names[f.Name] = struct{}{}
		}
	})

	st.TopLevel = len(c.Structures)
	st.Names = len(names)
	st.Diagnostics = len(c.Diagnostics)
	return st
}

// SortedTypes returns the keys of ByType in ascending order.
func (s Stats) SortedTypes() []uint16 {
	out := make([]uint16, 0, len(s.ByType))
	for t := range s.ByType {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Walk calls fn for every structure in depth-first, field order. depth is 0
// for top-level structures.
func Walk(c *Container, fn func(s *Structure, depth int)) {
	var walk func(s *Structure, depth int)
	walk = func(s *Structure, depth int) {
		fn(s, depth)
		for _, f := range s.Fields {
			for _, child := range f.Structures {
				walk(child, depth+1)
			}
		}
	}
	for _, s := range c.Structures {
		walk(s, 0)
	}
}
