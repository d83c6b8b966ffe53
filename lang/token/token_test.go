package token

import "testing"

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{IDENT, "identifier"},
		{PLUS, "+"},
		{WHILE, "while"},
		{FN, "fn"},
	}
	for _, c := range cases {
		if got := c.tok.String(); got != c.want {
			t.Errorf("%v.String() = %q, want %q", c.tok, got, c.want)
		}
	}
}

func TestTokenGoString(t *testing.T) {
	if got := PLUS.GoString(); got != "'+'" {
		t.Errorf("PLUS.GoString() = %q, want '+'", got)
	}
	if got := FN.GoString(); got != "fn" {
		t.Errorf("FN.GoString() = %q, want fn", got)
	}
}

func TestKeywords(t *testing.T) {
	if Keywords["fn"] != FN {
		t.Errorf("Keywords[fn] = %v, want FN", Keywords["fn"])
	}
	if _, ok := Keywords["notakeyword"]; ok {
		t.Errorf("expected notakeyword to not be a keyword")
	}
}

func TestPosLineCol(t *testing.T) {
	p := MakePos(12, 34)
	l, c := p.LineCol()
	if l != 12 || c != 34 {
		t.Errorf("LineCol() = %d,%d, want 12,34", l, c)
	}
	if p.Unknown() {
		t.Errorf("expected known position")
	}
	if !NoPos.Unknown() {
		t.Errorf("expected NoPos to be unknown")
	}
}
