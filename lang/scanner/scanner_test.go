package scanner_test

import (
	"testing"

	"github.com/mna/ferrox/lang/scanner"
	"github.com/mna/ferrox/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []scanner.TokenAndValue {
	t.Helper()
	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init("test", []byte(src), errs.Add)
	var toks []scanner.TokenAndValue
	for {
		tv := s.Scan()
		toks = append(toks, tv)
		if tv.Token == token.EOF {
			break
		}
	}
	require.NoError(t, errs.Err())
	return toks
}

func TestScanBasic(t *testing.T) {
	toks := scanAll(t, `fn main() { debug(4u64); }`)
	want := []token.Token{
		token.FN, token.IDENT, token.LPAREN, token.RPAREN, token.LBRACE,
		token.IDENT, token.LPAREN, token.INT, token.RPAREN, token.SEMI,
		token.RBRACE, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		require.Equalf(t, w, toks[i].Token, "token %d", i)
	}
	require.Equal(t, uint64(4), toks[7].Int)
}

func TestScanOperatorsAndComments(t *testing.T) {
	toks := scanAll(t, "a::b -> c // a comment\n < <= == != &")
	want := []token.Token{
		token.IDENT, token.COLONCOLON, token.IDENT, token.ARROW, token.IDENT,
		token.LT, token.LE, token.EQEQ, token.NEQ, token.AMP, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		require.Equalf(t, w, toks[i].Token, "token %d", i)
	}
}

func TestScanKeywords(t *testing.T) {
	toks := scanAll(t, "let mut x = true")
	want := []token.Token{token.LET, token.MUT, token.IDENT, token.EQ, token.BOOLTRUE, token.EOF}
	for i, w := range want {
		require.Equalf(t, w, toks[i].Token, "token %d", i)
	}
}

func TestScanIllegalCharacter(t *testing.T) {
	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init("test", []byte("@"), errs.Add)
	tv := s.Scan()
	require.Equal(t, token.ILLEGAL, tv.Token)
	require.Error(t, errs.Err())
}

func TestScanIntSuffixes(t *testing.T) {
	toks := scanAll(t, "1u64 2u32 3i64 4i32 5")
	for i := 0; i < 5; i++ {
		require.Equal(t, token.INT, toks[i].Token)
	}
}
