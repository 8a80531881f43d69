package grammar

import (
	"strings"
	"testing"

	"github.com/dhamidi/sulk/lexer"
	"github.com/dhamidi/sulk/symbol"
)

func TestEmbeddedGrammarVerifies(t *testing.T) {
	g, err := Check(FileName, strings.NewReader(Source()), Start)
	if err != nil {
		for _, e := range Errors(err) {
			t.Error(e)
		}
		t.FailNow()
	}
	for _, name := range []string{"SourceUnit", "Contract", "Member", "YulBlock", "ident"} {
		if g[name] == nil {
			t.Errorf("production %s missing", name)
		}
	}
}

func TestLoad(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g[Start] == nil {
		t.Fatalf("start production %s missing", Start)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		start   string
		want    int
	}{
		{"syntax only", `A = "a" .`, "", 0},
		{"undefined", `A = B C .`, "A", 2},
		{"unreachable", `A = "a" . B = "b" .`, "A", 1},
		{"bad syntax", `A = "a"`, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check("test.ebnf", strings.NewReader(tt.grammar), tt.start)
			if tt.want == 0 {
				if err != nil {
					t.Fatalf("Check() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Check() succeeded, want error")
			}
			if got := len(Errors(err)); got != tt.want {
				t.Errorf("got %d errors, want %d: %v", got, tt.want, err)
			}
		})
	}
}

func TestKeywordsAreKnown(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	contextual := map[string]bool{
		string(symbol.Error):  true,
		string(symbol.From):   true,
		string(symbol.Global): true,
	}
	kws := Keywords(g)
	if len(kws) == 0 {
		t.Fatal("no keywords found")
	}
	for _, kw := range kws {
		if !symbol.Symbol(kw).IsKeyword(false) && !contextual[kw] {
			t.Errorf("%q is neither a keyword nor a contextual word", kw)
		}
	}
}

const matchSource = `pragma solidity ^0.8.20;
import {B as C, D} from "./lib.sol";
import * as E from "e.sol";
using L for uint256 global;

abstract contract Token is Base(1), lib.Ownable {
    enum State { Open, Closed }
    event Transfer(address indexed from, address to);
    error Denied(uint code);
    uint256 public total = 1 << 4;
    modifier onlyOwner() { _; }
    function transfer(address to) external returns (bool) {
        return true;
    }
    using M for *;
    assembly ("memory-safe") {
        let a, b := call(gas(), 0, 0)
        x := add(a, b)
    }
}

function helper() pure {}
`

func TestRecognize(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRecognizer(g, Start)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"outline", matchSource, ""},
		{"empty", "", ""},
		{"stray semicolons", ";;", ""},
		{"assembly in body", "contract C { function f() { assembly { let p := mload(0x40) } } }", ""},
		{"missing name", "contract {}", "1:10: unexpected `{`"},
		{"unterminated", "contract C {", "unexpected end of input"},
		{"import without path", "import ;", "1:8: unexpected `;`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Recognize(lexer.New(tt.src, "test.sol").Tokens())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Recognize() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Recognize() succeeded, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Recognize() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRecognizerUnknownStart(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRecognizer(g, "Nope"); err == nil {
		t.Fatal("NewRecognizer() succeeded for a missing production")
	}
}

func TestRecognizeSmallGrammar(t *testing.T) {
	g, err := Check("list.ebnf", strings.NewReader(`List = "[" [ ident { "," ident } ] "]" . ident = "a" … "z" .`), "List")
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRecognizer(g, "List")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		src string
		ok  bool
	}{
		{"[]", true},
		{"[a]", true},
		{"[a, b, c]", true},
		{"[a,]", false},
		{"[a b]", false},
		{"[", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := r.Recognize(lexer.New(tt.src, "list").Tokens())
			if (err == nil) != tt.ok {
				t.Errorf("Recognize(%q) error = %v, want ok = %v", tt.src, err, tt.ok)
			}
		})
	}
}
