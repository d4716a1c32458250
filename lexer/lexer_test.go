package lexer

import (
	"testing"

	"github.com/cwbudde/goschem/token"
)

func allTokens(t *testing.T, input string) []*token.Token {
	t.Helper()
	l := New(input)
	var out []*token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken() error on %q: %v", input, err)
		}
		if tok == nil {
			return out
		}
		out = append(out, tok)
	}
}

func TestLexerProcedureCall(t *testing.T) {
	toks := allTokens(t, "( + 1 2 3 )")
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Data.Kind
	}
	want := []token.Kind{token.LeftParen, token.Identifier, token.Integer, token.Integer, token.Integer, token.RightParen}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d kind = %s, want %s", i, kinds[i], want[i])
		}
	}
	if toks[1].Data.Ident != "+" {
		t.Errorf("operator ident = %q, want %q", toks[1].Data.Ident, "+")
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.Integer},
		{"-7", token.Integer},
		{"5/3", token.Rational},
		{"1.5", token.Real},
		{"1e3", token.Real},
	}
	for _, c := range cases {
		toks := allTokens(t, c.input)
		if len(toks) != 1 {
			t.Fatalf("input %q: got %d tokens, want 1", c.input, len(toks))
		}
		if toks[0].Data.Kind != c.kind {
			t.Errorf("input %q: kind = %s, want %s", c.input, toks[0].Data.Kind, c.kind)
		}
	}
}

func TestLexerStringsAndCharacters(t *testing.T) {
	toks := allTokens(t, `"hello\nworld" #\a #\space`)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[0].Data.Kind != token.String || toks[0].Data.Str != "hello\nworld" {
		t.Errorf("string token = %+v", toks[0].Data)
	}
	if toks[1].Data.Kind != token.Character || toks[1].Data.Char != 'a' {
		t.Errorf("character token = %+v", toks[1].Data)
	}
	if toks[2].Data.Kind != token.Character || toks[2].Data.Char != ' ' {
		t.Errorf("character token = %+v", toks[2].Data)
	}
}

func TestLexerQuoteAndVector(t *testing.T) {
	toks := allTokens(t, "'(1 2) #(3 4)")
	wantKinds := []token.Kind{
		token.Quote, token.LeftParen, token.Integer, token.Integer, token.RightParen,
		token.VecConsIntro, token.Integer, token.Integer, token.RightParen,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}
	for i, want := range wantKinds {
		if toks[i].Data.Kind != want {
			t.Errorf("token %d kind = %s, want %s", i, toks[i].Data.Kind, want)
		}
	}
}

func TestLexerDottedPeriod(t *testing.T) {
	toks := allTokens(t, "(x . y)")
	wantKinds := []token.Kind{token.LeftParen, token.Identifier, token.Period, token.Identifier, token.RightParen}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}
	for i, want := range wantKinds {
		if toks[i].Data.Kind != want {
			t.Errorf("token %d kind = %s, want %s", i, toks[i].Data.Kind, want)
		}
	}
}

func TestLexerComments(t *testing.T) {
	toks := allTokens(t, "; a comment\n42 ; trailing\n")
	if len(toks) != 1 || toks[0].Data.Kind != token.Integer || toks[0].Data.Int != 42 {
		t.Fatalf("got %v, want single Integer(42)", toks)
	}
}

func TestLexerPosition(t *testing.T) {
	toks := allTokens(t, "(+ 1)")
	if toks[0].Location == nil || toks[0].Location.Line != 1 || toks[0].Location.Column != 1 {
		t.Errorf("first token location = %+v, want 1:1", toks[0].Location)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}
