package grammar

import (
	"errors"
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/sulk/token"
)

// The lexical productions ident, number and string stand for the token
// kinds of the same name. Any other lexical production matches the literal
// tokens it lists, like operator.
const (
	classIdent  = "ident"
	classNumber = "number"
	classString = "string"
)

type elemKind int

const (
	elemRule elemKind = iota
	elemClass
	elemText
	elemNever
)

type elem struct {
	kind elemKind
	name string
}

type rule struct {
	lhs string
	rhs []elem
}

type item struct {
	rule   *rule
	dot    int
	origin int
}

func (it item) done() bool {
	return it.dot == len(it.rule.rhs)
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Recognizer decides whether a token stream is a sentence of a grammar.
// Options, groups and repetitions are lowered to plain rules once, so
// matching a file is a single Earley pass over its tokens.
type Recognizer struct {
	start    string
	rules    map[string][]*rule
	nullable map[string]bool
	texts    map[string]map[string]bool
	fresh    int
}

// NewRecognizer prepares g for matching from start.
func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	if g[start] == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	r := &Recognizer{
		start:    start,
		rules:    make(map[string][]*rule),
		nullable: make(map[string]bool),
		texts:    make(map[string]map[string]bool),
	}
	for name, prod := range g {
		if isLexical(name) {
			texts := make(map[string]bool)
			collectTexts(prod.Expr, texts)
			r.texts[name] = texts
			continue
		}
		r.rules[name] = r.alternatives(name, prod.Expr)
	}
	r.computeNullable()
	return r, nil
}

func collectTexts(expr ebnf.Expression, out map[string]bool) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			collectTexts(x, out)
		}
	case *ebnf.Token:
		out[e.String] = true
	}
}

func (r *Recognizer) alternatives(lhs string, expr ebnf.Expression) []*rule {
	alt, ok := expr.(ebnf.Alternative)
	if !ok {
		return []*rule{{lhs: lhs, rhs: r.sequence(lhs, expr)}}
	}
	out := make([]*rule, 0, len(alt))
	for _, x := range alt {
		out = append(out, &rule{lhs: lhs, rhs: r.sequence(lhs, x)})
	}
	return out
}

func (r *Recognizer) sequence(lhs string, expr ebnf.Expression) []elem {
	switch e := expr.(type) {
	case nil:
		return nil
	case ebnf.Sequence:
		out := make([]elem, 0, len(e))
		for _, x := range e {
			out = append(out, r.elem(lhs, x))
		}
		return out
	}
	return []elem{r.elem(lhs, expr)}
}

func (r *Recognizer) elem(lhs string, expr ebnf.Expression) elem {
	switch e := expr.(type) {
	case *ebnf.Name:
		if isLexical(e.String) {
			return elem{kind: elemClass, name: e.String}
		}
		return elem{kind: elemRule, name: e.String}
	case *ebnf.Token:
		return elem{kind: elemText, name: e.String}
	case *ebnf.Group:
		name := r.newName(lhs)
		r.rules[name] = r.alternatives(name, e.Body)
		return elem{kind: elemRule, name: name}
	case *ebnf.Option:
		name := r.newName(lhs)
		r.rules[name] = append(r.alternatives(name, e.Body), &rule{lhs: name})
		return elem{kind: elemRule, name: name}
	case *ebnf.Repetition:
		// N = ε | N body
		name := r.newName(lhs)
		self := elem{kind: elemRule, name: name}
		rules := []*rule{{lhs: name}}
		for _, alt := range r.alternatives(name, e.Body) {
			alt.rhs = append([]elem{self}, alt.rhs...)
			rules = append(rules, alt)
		}
		r.rules[name] = rules
		return self
	}
	return elem{kind: elemNever}
}

func (r *Recognizer) newName(lhs string) string {
	r.fresh++
	return fmt.Sprintf("%s#%d", lhs, r.fresh)
}

func (r *Recognizer) computeNullable() {
	for changed := true; changed; {
		changed = false
		for name, rules := range r.rules {
			if r.nullable[name] {
				continue
			}
			for _, ru := range rules {
				if r.allNullable(ru.rhs) {
					r.nullable[name] = true
					changed = true
					break
				}
			}
		}
	}
}

func (r *Recognizer) allNullable(rhs []elem) bool {
	for _, e := range rhs {
		if e.kind != elemRule || !r.nullable[e.name] {
			return false
		}
	}
	return true
}

func (r *Recognizer) match(e elem, t token.Token) bool {
	switch e.kind {
	case elemText:
		return !t.IsLit() && t.String() == e.name
	case elemClass:
		switch e.name {
		case classIdent:
			return t.IsIdent()
		case classNumber:
			return t.IsLit() && !t.IsStrLit()
		case classString:
			return t.IsStrLit()
		}
		return !t.IsLit() && r.texts[e.name][t.String()]
	}
	return false
}

// Recognize reports whether tokens form a sentence of the grammar. The
// error names the first token no rule could continue with.
func (r *Recognizer) Recognize(tokens []token.Token) error {
	n := len(tokens)
	chart := make([]*itemSet, n+1)
	for i := range chart {
		chart[i] = &itemSet{seen: make(map[item]bool)}
	}
	for _, ru := range r.rules[r.start] {
		chart[0].add(item{rule: ru})
	}

	for i := 0; i <= n; i++ {
		set := chart[i]
		for j := 0; j < len(set.items); j++ {
			it := set.items[j]
			if it.done() {
				r.complete(chart, i, it)
				continue
			}
			next := it.rule.rhs[it.dot]
			if next.kind == elemRule {
				for _, ru := range r.rules[next.name] {
					set.add(item{rule: ru, origin: i})
				}
				// Nullable rules complete without consuming anything, so
				// the item can move past them right away.
				if r.nullable[next.name] {
					set.add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}
			if i < n && r.match(next, tokens[i]) {
				chart[i+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	for _, it := range chart[n].items {
		if it.rule.lhs == r.start && it.origin == 0 && it.done() {
			return nil
		}
	}

	furthest := 0
	for i := n; i >= 0; i-- {
		if len(chart[i].items) > 0 {
			furthest = i
			break
		}
	}
	if furthest < n {
		t := tokens[furthest]
		return fmt.Errorf("%s: unexpected %s", t.Span.Start, t.FullDescription())
	}
	if n > 0 {
		return fmt.Errorf("%s: unexpected end of input", tokens[n-1].Span.End)
	}
	return errors.New("unexpected end of input")
}

func (r *Recognizer) complete(chart []*itemSet, i int, done item) {
	waiting := chart[done.origin]
	for k := 0; k < len(waiting.items); k++ {
		it := waiting.items[k]
		if it.done() {
			continue
		}
		next := it.rule.rhs[it.dot]
		if next.kind == elemRule && next.name == done.rule.lhs {
			chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}
