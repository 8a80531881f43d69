package ast

import (
	"strings"

	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
)

type NodeKind int

const (
	KindSourceUnit NodeKind = iota
	KindPragma
	KindImport
	KindImportAlias
	KindUsing
	KindContract
	KindFunction
	KindModifier
	KindEvent
	KindErrorDecl
	KindEnum
	KindStruct
	KindAssembly
	KindYulLet
	KindYulAssign
	KindOther
)

var nodeKindNames = map[NodeKind]string{
	KindSourceUnit:  "SourceUnit",
	KindPragma:      "Pragma",
	KindImport:      "Import",
	KindImportAlias: "ImportAlias",
	KindUsing:       "Using",
	KindContract:    "Contract",
	KindFunction:    "Function",
	KindModifier:    "Modifier",
	KindEvent:       "Event",
	KindErrorDecl:   "ErrorDecl",
	KindEnum:        "Enum",
	KindStruct:      "Struct",
	KindAssembly:    "Assembly",
	KindYulLet:      "YulLet",
	KindYulAssign:   "YulAssign",
	KindOther:       "Other",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is an outline node. Only the fields relevant to Kind are set:
// Keyword holds the introducing keyword of contracts, Value the text of
// pragmas and import or assembly strings, Paths the base list of a contract
// or the library and target of a using directive, Idents the variants of an
// enum or the names bound by a Yul let. Yul assignment targets are Paths.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Name     symbol.Ident
	Keyword  symbol.Symbol
	Value    string
	Paths    []Path
	Idents   []symbol.Ident
	Abstract bool
	Global   bool
	Children []*Node
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.String() + "]")
	}
	if n.Abstract {
		b.WriteString(" abstract")
	}
	if n.Keyword != "" {
		b.WriteString(" " + string(n.Keyword))
	}
	if n.Name.Name != "" {
		b.WriteString(" " + string(n.Name.Name))
	}
	if n.Value != "" {
		b.WriteString(" " + n.Value)
	}
	if len(n.Paths) > 0 {
		names := make([]string, len(n.Paths))
		for i, p := range n.Paths {
			names[i] = p.String()
		}
		b.WriteString(" (" + strings.Join(names, ", ") + ")")
	}
	if len(n.Idents) > 0 {
		names := make([]string, len(n.Idents))
		for i, id := range n.Idents {
			names[i] = string(id.Name)
		}
		b.WriteString(" [" + strings.Join(names, ", ") + "]")
	}
	if n.Global {
		b.WriteString(" global")
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
