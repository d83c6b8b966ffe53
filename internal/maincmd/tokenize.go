package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/ferrox/lang/scanner"
	"github.com/mna/ferrox/lang/token"
	"github.com/mna/mainer"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, TokenizeFiles(ctx, stdio, args...))
}

// TokenizeFiles scans each named file and prints every token it produces,
// one per line, in the form "line:col: token literal".
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var errs scanner.ErrorList
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			errs.Add(token.Position{Filename: f}, err.Error())
			continue
		}

		var s scanner.Scanner
		s.Init(f, src, errs.Add)
		for {
			tv := s.Scan()
			line, col := tv.Pos.LineCol()
			fmt.Fprintf(stdio.Stdout, "%d:%d: %s", line, col, tv.Token)
			if tv.Lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", tv.Lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tv.Token == token.EOF {
				break
			}
		}
	}
	errs.Sort()
	return errs.Err()
}
