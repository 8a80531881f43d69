package parser

import (
	"github.com/dhamidi/sulk/ast"
	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
	"github.com/dhamidi/sulk/token"
)

// ParseSpanned runs f and returns the span of the tokens it consumed. An
// error without a span is given that span.
func ParseSpanned[T any](p *Parser, f func(*Parser) (T, *diag.Diag)) (source.Span, T, *diag.Diag) {
	lo := p.Token.Span
	res, err := f(p)
	span := lo.To(p.PrevToken.Span)
	if err != nil && err.Span.IsDummy() {
		err.WithSpan(span)
	}
	return span, res, err
}

// ParsePath parses a dotted name such as `foo.bar.baz`.
func (p *Parser) ParsePath() (ast.Path, *diag.Diag) {
	first, err := p.ParseIdent()
	if err != nil {
		return ast.Path{}, err
	}
	return p.ParsePathWith(first)
}

// ParsePathWith parses the rest of a path whose first segment is first.
func (p *Parser) ParsePathWith(first symbol.Ident) (ast.Path, *diag.Diag) {
	return p.parsePathWithF(first, (*Parser).ParseIdent)
}

// ParsePathAny parses a path whose segments may be reserved words.
func (p *Parser) ParsePathAny() (ast.Path, *diag.Diag) {
	first, err := p.ParseIdentAny()
	if err != nil {
		return ast.Path{}, err
	}
	return p.parsePathWithF(first, (*Parser).ParseIdentAny)
}

func (p *Parser) parsePathWithF(first symbol.Ident, f func(*Parser) (symbol.Ident, *diag.Diag)) (ast.Path, *diag.Diag) {
	if !p.CheckNoExpect(token.Dot) {
		return ast.NewSinglePath(first), nil
	}

	segs := make([]symbol.Ident, 1, 4)
	segs[0] = first
	for p.Eat(token.Dot) {
		id, err := f(p)
		if err != nil {
			return ast.Path{}, err
		}
		segs = append(segs, id)
	}
	return ast.NewPath(segs), nil
}

// ParseIdent parses an identifier. A reserved word is reported and then
// accepted as the identifier.
func (p *Parser) ParseIdent() (symbol.Ident, *diag.Diag) {
	return p.parseIdentCommon(true)
}

// ParseIdentStrict parses an identifier and fails on reserved words.
func (p *Parser) ParseIdentStrict() (symbol.Ident, *diag.Diag) {
	return p.parseIdentCommon(false)
}

// ParseIdentAny parses an identifier without checking whether it is reserved.
func (p *Parser) ParseIdentAny() (symbol.Ident, *diag.Diag) {
	id, err := p.identOrErr(true)
	if err != nil {
		return symbol.Ident{}, err
	}
	p.Bump()
	return id, nil
}

// ParseIdentOpt parses an identifier if the current token is one. A missing
// name is not recorded as an expectation.
func (p *Parser) ParseIdentOpt() (*symbol.Ident, *diag.Diag) {
	if !p.Token.IsIdent() {
		return nil, nil
	}
	id, err := p.ParseIdent()
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (p *Parser) parseIdentCommon(recovering bool) (symbol.Ident, *diag.Diag) {
	id, err := p.identOrErr(recovering)
	if err != nil {
		return symbol.Ident{}, err
	}
	if id.IsReserved(p.inYul) {
		err := p.expectedIdentFoundErr()
		if !recovering {
			return symbol.Ident{}, err
		}
		err.Emit()
	}
	p.Bump()
	return id, nil
}

// identOrErr returns the current token as an identifier without advancing.
func (p *Parser) identOrErr(recovering bool) (symbol.Ident, *diag.Diag) {
	if id, ok := p.Token.Ident(); ok {
		return id, nil
	}
	return p.expectedIdentFound(recovering)
}

func (p *Parser) expectedIdentFound(recovering bool) (symbol.Ident, *diag.Diag) {
	span := p.Token.Span
	err := p.Dcx().Errf("expected identifier, found %s", p.Token.FullDescription()).WithSpan(span)

	var (
		recovered symbol.Ident
		ok        bool
	)
	if p.Token.Kind == token.Comma && p.LookAhead(1).IsIdent() {
		if recovering {
			p.Bump()
			recovered, ok = p.Token.Ident()
		}
		err.SpanHelp(span, "remove this comma")
	}

	if recovering && ok {
		err.Emit()
		return recovered, nil
	}
	return symbol.Ident{}, err
}

func (p *Parser) expectedIdentFoundErr() *diag.Diag {
	_, err := p.expectedIdentFound(false)
	return err
}
