package ast

import (
	"encoding/json"
	"testing"

	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
)

func ident(name string) symbol.Ident {
	return symbol.NewIdent(symbol.Symbol(name), source.Span{})
}

func TestPathSingle(t *testing.T) {
	p := NewSinglePath(ident("a"))

	if !p.IsSingle() {
		t.Errorf("IsSingle() = false, want true")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
	if p.First() != p.Last() {
		t.Errorf("First() = %v, Last() = %v", p.First(), p.Last())
	}
	if p.String() != "a" {
		t.Errorf("String() = %q, want %q", p.String(), "a")
	}
	if !p.Equal(NewPath([]symbol.Ident{ident("a")})) {
		t.Errorf("a single-element slice should build the same path")
	}
}

func TestPathMulti(t *testing.T) {
	p := NewPath([]symbol.Ident{ident("a"), ident("b"), ident("c")})

	if p.IsSingle() {
		t.Errorf("IsSingle() = true, want false")
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
	if p.At(1).Name != "b" {
		t.Errorf("At(1) = %v, want b", p.At(1))
	}
	if p.Last().Name != "c" {
		t.Errorf("Last() = %v, want c", p.Last())
	}
	if p.String() != "a.b.c" {
		t.Errorf("String() = %q, want %q", p.String(), "a.b.c")
	}
	if p.Equal(NewPath([]symbol.Ident{ident("a"), ident("b")})) {
		t.Errorf("paths of different length should differ")
	}
}

func TestPathPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"empty", func() { NewPath(nil) }},
		{"out of range", func() { NewSinglePath(ident("a")).At(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected a panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindSourceUnit, "SourceUnit"},
		{KindContract, "Contract"},
		{KindYulLet, "YulLet"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNodeString(t *testing.T) {
	unit := &Node{Kind: KindSourceUnit}
	c := &Node{
		Kind:     KindContract,
		Keyword:  symbol.Contract,
		Name:     ident("C"),
		Abstract: true,
		Paths:    []Path{NewSinglePath(ident("A")), NewPath([]symbol.Ident{ident("lib"), ident("B")})},
	}
	c.AddChild(&Node{Kind: KindEnum, Name: ident("E"), Idents: []symbol.Ident{ident("X"), ident("Y")}})
	c.AddChild(nil)
	unit.AddChild(c)

	want := "SourceUnit\n" +
		"  Contract abstract contract C (A, lib.B)\n" +
		"    Enum E [X, Y]\n"
	if got := unit.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if len(c.Children) != 1 {
		t.Errorf("nil children should be ignored, got %d", len(c.Children))
	}
	if unit.FirstChildOfKind(KindContract) != c {
		t.Errorf("FirstChildOfKind did not find the contract")
	}
	if len(c.ChildrenOfKind(KindFunction)) != 0 {
		t.Errorf("ChildrenOfKind(KindFunction) should be empty")
	}
}

func TestNodeJSON(t *testing.T) {
	n := &Node{Kind: KindUsing, Paths: []Path{NewSinglePath(ident("L")), NewSinglePath(ident("T"))}, Global: true}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"kind":"Using","paths":["L","T"],"global":true}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
