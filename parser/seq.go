package parser

import (
	"fmt"

	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/token"
)

// SeqSep is the separator policy of a sequence.
type SeqSep struct {
	Sep                 token.Kind
	HasSep              bool
	TrailingSepAllowed  bool
	TrailingSepRequired bool
}

func SeqSepNone() SeqSep {
	return SeqSep{}
}

func SeqSepTrailingEnforced(t token.Kind) SeqSep {
	return SeqSep{Sep: t, HasSep: true, TrailingSepAllowed: true, TrailingSepRequired: true}
}

func SeqSepTrailingAllowed(t token.Kind) SeqSep {
	return SeqSep{Sep: t, HasSep: true, TrailingSepAllowed: true}
}

func SeqSepTrailingDisallowed(t token.Kind) SeqSep {
	return SeqSep{Sep: t, HasSep: true}
}

// SeqRecovery decides what happens when a separator is missing and the
// element after it does not parse either.
type SeqRecovery int

const (
	// RecoverEmit reports the error and ends the sequence early.
	RecoverEmit SeqRecovery = iota
	// RecoverDeferToCaller returns the error unemitted so that an outer
	// production can retry with a different reading of the input.
	RecoverDeferToCaller
)

// expectAny reports whether the current token is one of kets, recording the
// ones tried before a match.
func (p *Parser) expectAny(kets []token.Kind) bool {
	for _, k := range kets {
		if p.Check(k) {
			return true
		}
	}
	return false
}

// ParseSeqToBeforeTokens parses elements until one of kets without consuming
// it. f parses one element and must consume tokens up to the next separator
// or terminator.
//
// A missing separator is recovered when the next element still parses: the
// error is emitted with a hint and parsing goes on. recovered reports that
// the sequence stopped early after an emitted error, leaving the terminator
// for the caller to resynchronize on. A non-nil error is unemitted and owned
// by the caller.
func ParseSeqToBeforeTokens[T any](p *Parser, kets []token.Kind, sep SeqSep, mode SeqRecovery, f func(*Parser) (T, *diag.Diag)) (items []T, trailing, recovered bool, err *diag.Diag) {
	first := true
	for !p.expectAny(kets) {
		if p.Token.Kind.IsCloseDelim() || p.Token.IsEOF() {
			break
		}

		if sep.HasSep {
			if first {
				first = false
			} else {
				rec, expectErr := p.Expect(sep.Sep)
				if expectErr == nil {
					if rec {
						recovered = true
						break
					}
				} else {
					if sep.TrailingSepRequired {
						return items, trailing, recovered, expectErr
					}

					sp := p.PrevToken.Span.ShrinkToHi()
					t, elemErr := f(p)
					if elemErr == nil {
						expectErr.SpanHelp(sp, fmt.Sprintf("missing `%s`", sep.Sep)).Emit()
						items = append(items, t)
						continue
					}

					expectErr.AddChildren(elemErr.Children...)
					elemErr.Cancel()
					if p.Token.Kind == token.Colon || mode == RecoverDeferToCaller {
						return items, trailing, recovered, expectErr
					}
					expectErr.Emit()
					recovered = true
					break
				}
			}
		}

		if sep.TrailingSepAllowed && p.expectAny(kets) {
			trailing = true
			break
		}

		t, elemErr := f(p)
		if elemErr != nil {
			return items, trailing, recovered, elemErr
		}
		items = append(items, t)
	}
	return items, trailing, recovered, nil
}

// ParseSeqToBeforeEnd parses elements up to, not including, ket.
func ParseSeqToBeforeEnd[T any](p *Parser, ket token.Kind, sep SeqSep, mode SeqRecovery, f func(*Parser) (T, *diag.Diag)) (items []T, trailing, recovered bool, err *diag.Diag) {
	return ParseSeqToBeforeTokens(p, []token.Kind{ket}, sep, mode, f)
}

// ParseSeqToEnd parses elements and the closing ket. After an early stop the
// ket is left in place.
func ParseSeqToEnd[T any](p *Parser, ket token.Kind, sep SeqSep, mode SeqRecovery, f func(*Parser) (T, *diag.Diag)) (items []T, trailing bool, err *diag.Diag) {
	items, trailing, recovered, err := ParseSeqToBeforeEnd(p, ket, sep, mode, f)
	if err != nil {
		return items, trailing, err
	}
	if !recovered {
		if _, err := p.Expect(ket); err != nil {
			return items, trailing, err
		}
	}
	return items, trailing, nil
}

// ParseUnspannedSeq parses bra, the elements and ket. A missing bra is
// never recovered.
func ParseUnspannedSeq[T any](p *Parser, bra, ket token.Kind, sep SeqSep, mode SeqRecovery, f func(*Parser) (T, *diag.Diag)) (items []T, trailing bool, err *diag.Diag) {
	if _, err := p.Expect(bra); err != nil {
		return nil, false, err
	}
	return ParseSeqToEnd(p, ket, sep, mode, f)
}

func ParseDelimSeq[T any](p *Parser, delim token.Delimiter, sep SeqSep, mode SeqRecovery, f func(*Parser) (T, *diag.Diag)) (items []T, trailing bool, err *diag.Diag) {
	return ParseUnspannedSeq(p, token.OpenDelim(delim), token.CloseDelim(delim), sep, mode, f)
}

// ParseDelimCommaSeq parses a comma separated list such as `[a, b]`. A
// trailing comma is an error. An element that cannot be parsed after a
// missing comma is emitted and ends the list early.
func ParseDelimCommaSeq[T any](p *Parser, delim token.Delimiter, f func(*Parser) (T, *diag.Diag)) (items []T, trailing bool, err *diag.Diag) {
	return ParseDelimSeq(p, delim, SeqSepTrailingDisallowed(token.Comma), RecoverEmit, f)
}

// ParseParenCommaSeq parses a parenthesized comma separated list, the shape
// of call arguments. Unlike ParseDelimCommaSeq it hands an unrecoverable
// separator error back to the caller, which may read the parentheses as
// something else.
func ParseParenCommaSeq[T any](p *Parser, f func(*Parser) (T, *diag.Diag)) (items []T, trailing bool, err *diag.Diag) {
	return ParseDelimSeq(p, token.Parenthesis, SeqSepTrailingDisallowed(token.Comma), RecoverDeferToCaller, f)
}

// ParseNodelimCommaSeq parses a comma separated list ending before stop,
// such as the targets of an assignment.
func ParseNodelimCommaSeq[T any](p *Parser, stop token.Kind, f func(*Parser) (T, *diag.Diag)) (items []T, trailing bool, err *diag.Diag) {
	items, trailing, _, err = ParseSeqToBeforeEnd(p, stop, SeqSepTrailingDisallowed(token.Comma), RecoverEmit, f)
	return items, trailing, err
}
