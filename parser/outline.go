package parser

import (
	"slices"
	"strings"

	"github.com/dhamidi/sulk/ast"
	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
	"github.com/dhamidi/sulk/token"
)

var declKinds = []struct {
	kw   symbol.Symbol
	kind ast.NodeKind
}{
	{symbol.Function, ast.KindFunction},
	{symbol.Modifier, ast.KindModifier},
	{symbol.Event, ast.KindEvent},
	{symbol.Error, ast.KindErrorDecl},
	{symbol.Enum, ast.KindEnum},
	{symbol.Struct, ast.KindStruct},
}

var versionOps = []token.Kind{token.Caret, token.Tilde, token.Ge, token.Gt, token.Le, token.Lt, token.Assign}

// ParseSourceUnit parses a file into its outline: pragmas, imports, using
// directives, contracts and free declarations. Errors inside contract bodies
// are emitted and parsing resumes at the next member. Any other error stops
// the parse and is returned unemitted together with what was parsed so far.
func (p *Parser) ParseSourceUnit() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	unit := &ast.Node{Kind: ast.KindSourceUnit}
	for !p.Token.IsEOF() {
		if p.Eat(token.Semi) {
			continue
		}
		item, err := p.parseItem()
		if err != nil {
			unit.Span = lo.To(p.PrevToken.Span)
			return unit, err
		}
		unit.AddChild(item)
	}
	unit.Span = lo.To(p.PrevToken.Span)
	return unit, nil
}

// ParseSource parses src as a whole file and emits every diagnostic through
// the session, including the one that ends the parse early.
func ParseSource(sess *Session, name, src string) *ast.Node {
	return parseAndEmit(FromSourceCode(sess, name, src))
}

// ParseFile is ParseSource for a file already registered in the session's
// source map.
func ParseFile(sess *Session, f *source.File) *ast.Node {
	return parseAndEmit(FromSourceFile(sess, f))
}

func parseAndEmit(p *Parser) *ast.Node {
	unit, err := p.ParseSourceUnit()
	if err != nil {
		err.Emit()
	}
	return unit
}

func (p *Parser) parseItem() (*ast.Node, *diag.Diag) {
	switch {
	case p.CheckKeyword(symbol.Pragma):
		return p.parsePragma()
	case p.CheckKeyword(symbol.Import):
		return p.parseImport()
	case p.CheckKeyword(symbol.Using):
		return p.parseUsing()
	case p.CheckKeyword(symbol.Abstract), p.CheckKeyword(symbol.Contract),
		p.CheckKeyword(symbol.Interface), p.CheckKeyword(symbol.Library):
		return p.parseContract()
	}
	if kind, ok := p.checkDecl(); ok {
		return p.parseSpannedDecl(kind)
	}
	return Unexpected[*ast.Node](p)
}

// checkDecl matches the keyword that starts a named declaration. Modifiers
// only count inside contracts.
func (p *Parser) checkDecl() (ast.NodeKind, bool) {
	for _, d := range declKinds {
		if d.kind == ast.KindModifier && !p.inContract {
			continue
		}
		if p.CheckKeyword(d.kw) {
			return d.kind, true
		}
	}
	return 0, false
}

func (p *Parser) parsePragma() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	p.Bump()
	name, err := p.ParseIdentAny()
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Kind: ast.KindPragma, Name: name}

	var b strings.Builder
	if name.Name == "solidity" {
		if slices.Contains(versionOps, p.Token.Kind) {
			b.WriteString(p.Token.String())
			p.Bump()
		}
		if !p.CheckVersionNumber() {
			return nil, p.UnexpectedError()
		}
	}
	b.WriteString(p.textUntil(token.Semi))
	node.Value = b.String()

	if err := p.ExpectSemi(); err != nil {
		return nil, err
	}
	node.Span = lo.To(p.PrevToken.Span)
	return node, nil
}

func (p *Parser) parseImport() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	p.Bump()
	node := &ast.Node{Kind: ast.KindImport}

	switch {
	case p.CheckStrLit():
		node.Value = strLitValue(p.Token.Symbol)
		p.Bump()
		if p.EatKeyword(symbol.As) {
			name, err := p.ParseIdent()
			if err != nil {
				return nil, err
			}
			node.Name = name
		}
	case p.Check(token.OpenBrace):
		aliases, _, err := ParseDelimCommaSeq(p, token.Brace, (*Parser).parseImportAlias)
		if err != nil {
			return nil, err
		}
		p.closeReportedList(token.CloseBrace)
		node.Children = aliases
		if node.Value, err = p.parseFromPath(); err != nil {
			return nil, err
		}
	case p.Check(token.Star):
		p.Bump()
		if err := p.ExpectKeyword(symbol.As); err != nil {
			return nil, err
		}
		name, err := p.ParseIdent()
		if err != nil {
			return nil, err
		}
		node.Name = name
		if node.Value, err = p.parseFromPath(); err != nil {
			return nil, err
		}
	default:
		return Unexpected[*ast.Node](p)
	}

	if err := p.ExpectSemi(); err != nil {
		return nil, err
	}
	node.Span = lo.To(p.PrevToken.Span)
	return node, nil
}

func (p *Parser) parseFromPath() (string, *diag.Diag) {
	if err := p.ExpectKeyword(symbol.From); err != nil {
		return "", err
	}
	return p.parseStrLit()
}

func (p *Parser) parseImportAlias() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	name, err := p.ParseIdent()
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Kind: ast.KindImportAlias, Name: name}
	if p.EatKeyword(symbol.As) {
		alias, err := p.ParseIdent()
		if err != nil {
			return nil, err
		}
		node.Idents = []symbol.Ident{alias}
	}
	node.Span = lo.To(p.PrevToken.Span)
	return node, nil
}

func (p *Parser) parseUsing() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	p.Bump()
	lib, err := p.ParsePath()
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Kind: ast.KindUsing, Paths: []ast.Path{lib}}
	if err := p.ExpectKeyword(symbol.For); err != nil {
		return nil, err
	}

	switch {
	case p.Eat(token.Star):
		node.Value = "*"
	case p.CheckElementaryType():
		node.Value = string(p.Token.Symbol)
		p.Bump()
	case p.CheckPath():
		target, err := p.ParsePath()
		if err != nil {
			return nil, err
		}
		node.Paths = append(node.Paths, target)
	default:
		return Unexpected[*ast.Node](p)
	}
	node.Global = p.EatKeyword(symbol.Global)

	if err := p.ExpectSemi(); err != nil {
		return nil, err
	}
	node.Span = lo.To(p.PrevToken.Span)
	return node, nil
}

func (p *Parser) parseContract() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	node := &ast.Node{Kind: ast.KindContract}
	node.Abstract = p.EatKeyword(symbol.Abstract)
	switch {
	case p.EatKeyword(symbol.Contract):
		node.Keyword = symbol.Contract
	case p.EatKeyword(symbol.Interface):
		node.Keyword = symbol.Interface
	case p.EatKeyword(symbol.Library):
		node.Keyword = symbol.Library
	default:
		return nil, p.UnexpectedError()
	}

	name, err := p.ParseIdentStrict()
	if err != nil {
		return nil, err
	}
	node.Name = name

	if p.EatKeyword(symbol.Is) {
		bases, _, err := ParseNodelimCommaSeq(p, token.OpenBrace, (*Parser).parseInheritanceSpecifier)
		if err != nil {
			return nil, err
		}
		node.Paths = bases
		p.skipReportedUntil(token.OpenBrace)
	}

	if _, err := p.Expect(token.OpenBrace); err != nil {
		return nil, err
	}
	members, err := WithContract(p, (*Parser).parseContractBody)
	node.Children = members
	node.Span = lo.To(p.PrevToken.Span)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// parseInheritanceSpecifier parses a base such as `Ownable(msg.sender)`.
// Constructor arguments are skipped.
func (p *Parser) parseInheritanceSpecifier() (ast.Path, *diag.Diag) {
	path, err := p.ParsePath()
	if err != nil {
		return path, err
	}
	if p.CheckNoExpect(token.OpenParen) {
		p.skipDelimited()
	}
	return path, nil
}

func (p *Parser) parseContractBody() ([]*ast.Node, *diag.Diag) {
	var members []*ast.Node
	for !p.Check(token.CloseBrace) && !p.Token.IsEOF() {
		span, member, err := ParseSpanned(p, (*Parser).parseMember)
		if err != nil {
			err.Emit()
			p.recoverMember()
			continue
		}
		member.Span = span
		members = append(members, member)
	}
	if _, err := p.Expect(token.CloseBrace); err != nil {
		return members, err
	}
	return members, nil
}

func (p *Parser) parseMember() (*ast.Node, *diag.Diag) {
	if kind, ok := p.checkDecl(); ok {
		return p.parseDecl(kind)
	}
	switch {
	case p.CheckKeyword(symbol.Using):
		return p.parseUsing()
	case p.CheckKeyword(symbol.Assembly):
		return p.parseAssembly()
	}
	text, err := p.finishDecl()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindOther, Value: text}, nil
}

func (p *Parser) parseSpannedDecl(kind ast.NodeKind) (*ast.Node, *diag.Diag) {
	span, node, err := ParseSpanned(p, func(p *Parser) (*ast.Node, *diag.Diag) {
		return p.parseDecl(kind)
	})
	if err != nil {
		return nil, err
	}
	node.Span = span
	return node, nil
}

// parseDecl parses a declaration introduced by a keyword matched by
// checkDecl. Only the name is kept; the rest is skipped.
func (p *Parser) parseDecl(kind ast.NodeKind) (*ast.Node, *diag.Diag) {
	p.Bump()
	node := &ast.Node{Kind: kind}

	switch kind {
	case ast.KindFunction:
		name, err := p.ParseIdentOpt()
		if err != nil {
			return nil, err
		}
		if name != nil {
			node.Name = *name
		}
	case ast.KindEnum:
		name, err := p.ParseIdent()
		if err != nil {
			return nil, err
		}
		node.Name = name
		variants, _, err := ParseDelimCommaSeq(p, token.Brace, (*Parser).ParseIdent)
		if err != nil {
			return nil, err
		}
		p.closeReportedList(token.CloseBrace)
		node.Idents = variants
		return node, nil
	default:
		name, err := p.ParseIdent()
		if err != nil {
			return nil, err
		}
		node.Name = name
	}

	if _, err := p.finishDecl(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseAssembly() (*ast.Node, *diag.Diag) {
	p.Bump()
	node := &ast.Node{Kind: ast.KindAssembly}
	if p.CheckStrLit() {
		node.Value = strLitValue(p.Token.Symbol)
		p.Bump()
	}
	if p.Check(token.OpenParen) {
		flags, _, err := ParseParenCommaSeq(p, (*Parser).parseStrLit)
		if err != nil {
			return nil, err
		}
		if node.Value != "" {
			node.Value += " "
		}
		node.Value += "(" + strings.Join(flags, ", ") + ")"
	}

	stmts, err := WithYul(p, (*Parser).parseYulBlock)
	if err != nil {
		return nil, err
	}
	node.Children = stmts
	return node, nil
}

// parseYulBlock parses a `{ ... }` block of inline assembly, keeping only
// variable declarations and assignments. Errors in a statement are emitted
// and the block goes on with the next token.
func (p *Parser) parseYulBlock() ([]*ast.Node, *diag.Diag) {
	if _, err := p.Expect(token.OpenBrace); err != nil {
		return nil, err
	}

	var stmts []*ast.Node
	for !p.Check(token.CloseBrace) && !p.Token.IsEOF() {
		var (
			stmt  *ast.Node
			inner []*ast.Node
			err   *diag.Diag
		)
		switch {
		case p.CheckKeyword(symbol.Let):
			stmt, err = p.parseYulLet()
		case p.CheckNoExpect(token.OpenBrace):
			inner, err = p.parseYulBlock()
			stmts = append(stmts, inner...)
		case p.CheckAnyIdent() && LookAheadWith(p, 1, isYulAssignStart):
			stmt, err = p.parseYulAssign()
		default:
			p.Bump()
		}
		if err != nil {
			err.Emit()
			if !p.CheckNoExpect(token.CloseBrace) && !p.Token.IsEOF() {
				p.Bump()
			}
			continue
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if _, err := p.Expect(token.CloseBrace); err != nil {
		return stmts, err
	}
	return stmts, nil
}

func isYulAssignStart(t token.Token) bool {
	return t.Kind == token.Comma || t.Kind == token.Walrus || t.Kind == token.Dot
}

func (p *Parser) parseYulLet() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	p.Bump()
	first, err := p.ParseIdent()
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Kind: ast.KindYulLet, Idents: []symbol.Ident{first}}
	for p.Eat(token.Comma) {
		id, err := p.ParseIdent()
		if err != nil {
			return nil, err
		}
		node.Idents = append(node.Idents, id)
	}
	if p.Eat(token.Walrus) {
		if err := p.skipYulExpr(); err != nil {
			return nil, err
		}
	}
	node.Span = lo.To(p.PrevToken.Span)
	return node, nil
}

// parseYulAssign parses `a, b := f()`. A broken target list is handed back
// to the caller instead of being reported early.
func (p *Parser) parseYulAssign() (*ast.Node, *diag.Diag) {
	lo := p.Token.Span
	targets, _, _, err := ParseSeqToBeforeTokens(p, []token.Kind{token.Walrus},
		SeqSepTrailingDisallowed(token.Comma), RecoverDeferToCaller, (*Parser).ParsePathAny)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.Walrus); err != nil {
		return nil, err
	}
	if err := p.skipYulExpr(); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindYulAssign, Paths: targets, Span: lo.To(p.PrevToken.Span)}, nil
}

// skipYulExpr skips a literal, a path or a call.
func (p *Parser) skipYulExpr() *diag.Diag {
	switch {
	case p.CheckLit():
		p.Bump()
		return nil
	case p.CheckPath():
		if _, err := p.ParsePathAny(); err != nil {
			return err
		}
		if p.CheckNoExpect(token.OpenParen) {
			p.skipDelimited()
		}
		return nil
	}
	return p.UnexpectedError()
}

// parseStrLit fails without listing the gathered expectations, so it can be
// tried on a token that was already reported.
func (p *Parser) parseStrLit() (string, *diag.Diag) {
	if !p.CheckStrLit() {
		err := p.Dcx().Errf("expected string literal, found %s", p.Token.FullDescription()).WithSpan(p.Token.Span)
		return "", err
	}
	s := strLitValue(p.Token.Symbol)
	p.Bump()
	return s, nil
}

// strLitValue strips the prefix and quotes of a string literal.
func strLitValue(sym symbol.Symbol) string {
	s := string(sym)
	if i := strings.IndexAny(s, `"'`); i >= 0 {
		s = s[i:]
	}
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return s
}

// finishDecl consumes the rest of a declaration, up to and including its
// `;` or its body, and returns the text before that.
func (p *Parser) finishDecl() (string, *diag.Diag) {
	var b strings.Builder
	end := -1
	depth := 0
	for !p.Token.IsEOF() {
		k := p.Token.Kind
		if depth == 0 && (k == token.Semi || k == token.OpenBrace || k.IsCloseDelim()) {
			break
		}
		switch {
		case k.IsOpenDelim():
			depth++
		case k.IsCloseDelim():
			depth--
		}
		end = p.writeToken(&b, end)
		p.Bump()
	}
	if p.CheckNoExpect(token.OpenBrace) {
		p.skipDelimited()
		return b.String(), nil
	}
	return b.String(), p.ExpectSemi()
}

// textUntil consumes tokens up to, not including, one of stops and returns
// their text.
func (p *Parser) textUntil(stops ...token.Kind) string {
	var b strings.Builder
	end := -1
	for !p.Token.IsEOF() && !slices.Contains(stops, p.Token.Kind) {
		end = p.writeToken(&b, end)
		p.Bump()
	}
	return b.String()
}

// writeToken appends the current token, separated by a space from the
// previous one when the source has a gap between them.
func (p *Parser) writeToken(b *strings.Builder, prevEnd int) int {
	if prevEnd >= 0 && p.Token.Span.Start.Offset > prevEnd {
		b.WriteByte(' ')
	}
	b.WriteString(p.Token.String())
	return p.Token.Span.End.Offset
}

// skipDelimited consumes a balanced group starting at an opening delimiter.
func (p *Parser) skipDelimited() {
	depth := 0
	for !p.Token.IsEOF() {
		switch {
		case p.Token.Kind.IsOpenDelim():
			depth++
		case p.Token.Kind.IsCloseDelim():
			depth--
		}
		p.Bump()
		if depth <= 0 {
			return
		}
	}
}

// recoverMember skips to the start of the next contract member.
func (p *Parser) recoverMember() {
	for !p.Token.IsEOF() {
		switch p.Token.Kind {
		case token.Semi:
			p.Bump()
			return
		case token.OpenBrace:
			p.skipDelimited()
			return
		case token.CloseBrace:
			return
		}
		p.Bump()
	}
}

// skipReportedUntil skips to stop when the current token was already the
// subject of an unexpected-token error, so it is never reported twice. It
// reports whether anything was skipped.
func (p *Parser) skipReportedUntil(stop token.Kind) bool {
	if !p.hasLastUnexpected || p.lastUnexpectedSpan != p.Token.Span {
		return false
	}
	for !p.Token.IsEOF() && !p.CheckNoExpect(stop) {
		p.Bump()
	}
	return true
}

// closeReportedList finishes a list that stopped early at a reported token:
// the rest of the list is skipped and its closing delimiter consumed.
func (p *Parser) closeReportedList(ket token.Kind) {
	if p.skipReportedUntil(ket) {
		p.EatNoExpect(ket)
	}
}
