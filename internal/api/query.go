package api

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// Condition filter operators accepted by the resource query endpoint.
const (
	OpGE = "ge"
	OpLE = "le"
	OpEQ = "eq"
	OpGT = "gt"
)

// Condition is one predicate slot in a query's search object. Slots are
// implicitly AND-ed by the endpoint.
type Condition struct {
	Field string      `json:"field"`
	Type  string      `json:"type"`
	Data  interface{} `json:"data"`
}

// SortField is one field of a query's sort precedence.
type SortField struct {
	Field     string
	Direction string
}

// SortOrder is the query's sort precedence, highest first. It marshals to
// a JSON object whose keys keep slice order, so every page request of a
// paged fetch expresses the same precedence.
type SortOrder []SortField

func (s SortOrder) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(f.Field)
		if err != nil {
			return nil, err
		}
		dir, err := sonic.Marshal(f.Direction)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(dir)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *SortOrder) UnmarshalJSON(data []byte) error {
	root, err := sonic.Get(data)
	if err != nil {
		return err
	}
	out := (*s)[:0]
	var fieldErr error
	if err := root.ForEach(func(path ast.Sequence, node *ast.Node) bool {
		dir, dirErr := node.String()
		if dirErr != nil {
			fieldErr = dirErr
			return false
		}
		out = append(out, SortField{Field: *path.Key, Direction: dir})
		return true
	}); err != nil {
		return err
	}
	*s = out
	return fieldErr
}

// Query is the request body of a resource query: filtered, joined, sorted
// and paged.
type Query struct {
	Search map[string]Condition `json:"search,omitempty"`
	Join   []string             `json:"join,omitempty"`
	Sort   SortOrder            `json:"sort,omitempty"`
	Max    int                  `json:"max,omitempty"`
	Start  int                  `json:"start,omitempty"`
}

// Search assigns the given conditions to the named slots s1, s2, ... in
// order.
func Search(conds ...Condition) map[string]Condition {
	search := make(map[string]Condition, len(conds))
	for i, c := range conds {
		search[fmt.Sprintf("s%d", i+1)] = c
	}
	return search
}
