// Package parser provides the recursive-descent parsing engine for Solidity
// source and a declaration-level outline grammar built on top of it.
//
// # Overview
//
// A Parser walks a materialized slice of tokens produced by the lexer. It
// keeps the current and previous token, the set of things that would have
// been accepted at the current position, and two mode flags: whether it is
// inside a contract body and whether it is inside inline assembly (Yul).
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │
//	│   (Map)     │     │  (tokens)   │     │  (outline)  │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │ diag.Context│
//	                                        │  (emitter)  │
//	                                        └─────────────┘
//
// # Expectations
//
// Every Check, Eat and CheckKeyword call that fails records what it was
// looking for. When a production finally gives up, the error lists all of
// them:
//
//	expected one of `,`, `as`, or `}`, found `B`
//
// The set is cleared whenever the parser advances, so it only ever describes
// the current token. CheckNoExpect and EatNoExpect test the token without recording.
//
// # Diagnostics
//
// Parse failures are *diag.Diag values returned next to the result:
//
//	name, err := p.ParseIdent()
//	if err != nil {
//	    return nil, err
//	}
//
// A returned diagnostic belongs to the caller, which must either Emit or
// Cancel it. Recoverable problems, such as a missing comma between list
// elements or a reserved word used as a name, are emitted on the spot and
// parsing goes on.
//
// # Sequences
//
// ParseSeqToBeforeTokens and its wrappers parse separated lists. When a
// separator is missing the parser tries the next element anyway; if it
// parses, the error is emitted with a "missing `,`" hint and the list goes
// on. Otherwise the SeqRecovery mode decides whether the error is emitted
// and the list stops, or the error is handed back to the caller untouched.
//
// # Modes
//
// WithYul and WithContract run a production with a mode flag set and
// restore the previous value however the production exits. Inside Yul only
// the Yul keywords are reserved, so `let` starts a declaration while
// `contract` is an ordinary identifier.
package parser
