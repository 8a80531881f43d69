// Package grammar carries the EBNF description of the outline grammar,
// checks it with golang.org/x/exp/ebnf and matches token streams against it.
package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

//go:embed sulk.ebnf
var source string

// FileName is the name the embedded grammar is reported under.
const FileName = "sulk.ebnf"

// Start is the production a source file is parsed from.
const Start = "SourceUnit"

// Source returns the text of the embedded grammar.
func Source() string {
	return source
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return ebnf.Parse(FileName, strings.NewReader(source))
}

// Check parses the grammar read from r and verifies it from start. An empty
// start only checks the syntax.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return g, fmt.Errorf("verify %s: %w", filename, err)
	}
	return g, nil
}

// Errors splits an error returned by the ebnf package into its parts.
func Errors(err error) []error {
	for {
		v := reflect.ValueOf(err)
		if v.Kind() == reflect.Slice {
			out := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if e, ok := v.Index(i).Interface().(error); ok {
					out = append(out, e)
				}
			}
			return out
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return []error{err}
		}
		err = u.Unwrap()
	}
}

// Keywords returns the sorted alphabetic terminals used by the syntactic
// productions of g.
func Keywords(g ebnf.Grammar) []string {
	seen := make(map[string]bool)
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		collectKeywords(prod.Expr, seen)
	}
	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	slices.Sort(out)
	return out
}

func collectKeywords(expr ebnf.Expression, seen map[string]bool) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			collectKeywords(x, seen)
		}
	case ebnf.Sequence:
		for _, x := range e {
			collectKeywords(x, seen)
		}
	case *ebnf.Group:
		collectKeywords(e.Body, seen)
	case *ebnf.Option:
		collectKeywords(e.Body, seen)
	case *ebnf.Repetition:
		collectKeywords(e.Body, seen)
	case *ebnf.Token:
		if r, _ := utf8.DecodeRuneInString(e.String); unicode.IsLetter(r) {
			seen[e.String] = true
		}
	}
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}
