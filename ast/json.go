package ast

import (
	"encoding/json"

	"github.com/dhamidi/sulk/source"
)

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Name     string      `json:"name,omitempty"`
	Keyword  string      `json:"keyword,omitempty"`
	Value    string      `json:"value,omitempty"`
	Paths    []string    `json:"paths,omitempty"`
	Idents   []string    `json:"idents,omitempty"`
	Abstract bool        `json:"abstract,omitempty"`
	Global   bool        `json:"global,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind:     n.Kind.String(),
		Span:     spanToJSON(n.Span),
		Name:     string(n.Name.Name),
		Keyword:  string(n.Keyword),
		Value:    n.Value,
		Abstract: n.Abstract,
		Global:   n.Global,
	}
	for _, p := range n.Paths {
		jn.Paths = append(jn.Paths, p.String())
	}
	for _, id := range n.Idents {
		jn.Idents = append(jn.Idents, string(id.Name))
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func spanToJSON(sp source.Span) *jsonSpan {
	if sp.IsDummy() {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: sp.Start.Line, Column: sp.Start.Column},
		End:   jsonPosition{Line: sp.End.Line, Column: sp.End.Column},
	}
}
