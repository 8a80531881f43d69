// Package symbol defines identifier symbols and the keyword tables that
// decide which of them are reserved.
//
// Reservation depends on the parsing mode: ordinary source reserves the
// language keywords (both the ones in use and the ones set aside for future
// use) together with the elementary type names, while inline assembly (Yul)
// reserves only its own, much smaller keyword set.
package symbol

import (
	"strconv"
	"strings"

	"github.com/dhamidi/sulk/source"
)

type Symbol string

func (s Symbol) String() string {
	return string(s)
}

// Keywords used by the grammar.
const (
	Abstract    Symbol = "abstract"
	Address     Symbol = "address"
	Anonymous   Symbol = "anonymous"
	As          Symbol = "as"
	Assembly    Symbol = "assembly"
	Bool        Symbol = "bool"
	Break       Symbol = "break"
	Bytes       Symbol = "bytes"
	Calldata    Symbol = "calldata"
	Catch       Symbol = "catch"
	Constant    Symbol = "constant"
	Constructor Symbol = "constructor"
	Continue    Symbol = "continue"
	Contract    Symbol = "contract"
	Delete      Symbol = "delete"
	Do          Symbol = "do"
	Else        Symbol = "else"
	Emit        Symbol = "emit"
	Enum        Symbol = "enum"
	Event       Symbol = "event"
	External    Symbol = "external"
	Fallback    Symbol = "fallback"
	False       Symbol = "false"
	Fixed       Symbol = "fixed"
	For         Symbol = "for"
	Function    Symbol = "function"
	Hex         Symbol = "hex"
	If          Symbol = "if"
	Immutable   Symbol = "immutable"
	Import      Symbol = "import"
	Indexed     Symbol = "indexed"
	Interface   Symbol = "interface"
	Internal    Symbol = "internal"
	Is          Symbol = "is"
	Library     Symbol = "library"
	Mapping     Symbol = "mapping"
	Memory      Symbol = "memory"
	Modifier    Symbol = "modifier"
	New         Symbol = "new"
	Override    Symbol = "override"
	Payable     Symbol = "payable"
	Pragma      Symbol = "pragma"
	Private     Symbol = "private"
	Public      Symbol = "public"
	Pure        Symbol = "pure"
	Receive     Symbol = "receive"
	Return      Symbol = "return"
	Returns     Symbol = "returns"
	Storage     Symbol = "storage"
	String      Symbol = "string"
	Struct      Symbol = "struct"
	Throw       Symbol = "throw"
	True        Symbol = "true"
	Try         Symbol = "try"
	Type        Symbol = "type"
	Ufixed      Symbol = "ufixed"
	Unchecked   Symbol = "unchecked"
	Unicode     Symbol = "unicode"
	Using       Symbol = "using"
	View        Symbol = "view"
	Virtual     Symbol = "virtual"
	While       Symbol = "while"
)

// Keywords reserved for future use.
const (
	After       Symbol = "after"
	Alias       Symbol = "alias"
	Apply       Symbol = "apply"
	Auto        Symbol = "auto"
	Byte        Symbol = "byte"
	Case        Symbol = "case"
	Copyof      Symbol = "copyof"
	Default     Symbol = "default"
	Define      Symbol = "define"
	Final       Symbol = "final"
	Implements  Symbol = "implements"
	In          Symbol = "in"
	Inline      Symbol = "inline"
	Let         Symbol = "let"
	Macro       Symbol = "macro"
	Match       Symbol = "match"
	Mutable     Symbol = "mutable"
	Null        Symbol = "null"
	Of          Symbol = "of"
	Partial     Symbol = "partial"
	Promise     Symbol = "promise"
	Reference   Symbol = "reference"
	Relocatable Symbol = "relocatable"
	Sealed      Symbol = "sealed"
	Sizeof      Symbol = "sizeof"
	Static      Symbol = "static"
	Supports    Symbol = "supports"
	Switch      Symbol = "switch"
	Typedef     Symbol = "typedef"
	Typeof      Symbol = "typeof"
	Var         Symbol = "var"
)

// Contextual words that are never reserved.
const (
	Error  Symbol = "error"
	From   Symbol = "from"
	Global Symbol = "global"
	Revert Symbol = "revert"
	Leave  Symbol = "leave"
)

var usedKeywords = setOf(
	Abstract, Address, Anonymous, As, Assembly, Bool, Break, Bytes, Calldata,
	Catch, Constant, Constructor, Continue, Contract, Delete, Do, Else, Emit,
	Enum, Event, External, Fallback, False, Fixed, For, Function, Hex, If,
	Immutable, Import, Indexed, Interface, Internal, Is, Library, Mapping,
	Memory, Modifier, New, Override, Payable, Pragma, Private, Public, Pure,
	Receive, Return, Returns, Storage, String, Struct, Throw, True, Try, Type,
	Ufixed, Unchecked, Unicode, Using, View, Virtual, While,
)

var unusedKeywords = setOf(
	After, Alias, Apply, Auto, Byte, Case, Copyof, Default, Define, Final,
	Implements, In, Inline, Let, Macro, Match, Mutable, Null, Of, Partial,
	Promise, Reference, Relocatable, Sealed, Sizeof, Static, Supports, Switch,
	Typedef, Typeof, Var,
)

var yulKeywords = setOf(
	Break, Case, Continue, Default, False, For, Function, If, Leave, Let,
	Switch, True,
)

func setOf(syms ...Symbol) map[Symbol]struct{} {
	m := make(map[Symbol]struct{}, len(syms))
	for _, s := range syms {
		m[s] = struct{}{}
	}
	return m
}

func (s Symbol) IsUsedKeyword() bool {
	_, ok := usedKeywords[s]
	return ok
}

func (s Symbol) IsUnusedKeyword() bool {
	_, ok := unusedKeywords[s]
	return ok
}

func (s Symbol) IsYulKeyword() bool {
	_, ok := yulKeywords[s]
	return ok
}

// IsKeyword reports whether s is a keyword of the given mode.
func (s Symbol) IsKeyword(inYul bool) bool {
	if inYul {
		return s.IsYulKeyword()
	}
	return s.IsUsedKeyword() || s.IsUnusedKeyword()
}

// IsReserved reports whether s may not be used as an identifier.
func (s Symbol) IsReserved(inYul bool) bool {
	if inYul {
		return s.IsYulKeyword()
	}
	return s.IsUsedKeyword() || s.IsUnusedKeyword() || s.IsElementaryType()
}

// IsElementaryType reports whether s names a built-in value type such as
// uint256, bytes32 or fixed128x18.
func (s Symbol) IsElementaryType() bool {
	str := string(s)
	switch s {
	case Address, Bool, String, Bytes, Fixed, Ufixed, "int", "uint":
		return true
	}
	switch {
	case strings.HasPrefix(str, "uint"):
		return isIntSize(str[4:])
	case strings.HasPrefix(str, "int"):
		return isIntSize(str[3:])
	case strings.HasPrefix(str, "bytes"):
		n, ok := atoi(str[5:])
		return ok && n >= 1 && n <= 32
	case strings.HasPrefix(str, "ufixed"):
		return isFixedSize(str[6:])
	case strings.HasPrefix(str, "fixed"):
		return isFixedSize(str[5:])
	}
	return false
}

func isIntSize(s string) bool {
	n, ok := atoi(s)
	return ok && n >= 8 && n <= 256 && n%8 == 0
}

func isFixedSize(s string) bool {
	m, n, found := strings.Cut(s, "x")
	if !found {
		return false
	}
	bits, ok := atoi(m)
	if !ok || bits < 8 || bits > 256 || bits%8 != 0 {
		return false
	}
	frac, ok := atoi(n)
	return ok && frac >= 0 && frac <= 80
}

func atoi(s string) (int, bool) {
	if s == "" || s[0] == '0' && len(s) > 1 || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Ident is an identifier together with the span it was read from.
type Ident struct {
	Name Symbol
	Span source.Span
}

func NewIdent(name Symbol, span source.Span) Ident {
	return Ident{Name: name, Span: span}
}

func (id Ident) IsReserved(inYul bool) bool {
	return id.Name.IsReserved(inYul)
}

func (id Ident) String() string {
	return string(id.Name)
}
