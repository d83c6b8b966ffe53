package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/parser"
	"github.com/mna/mainer"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, ParseFiles(stdio, args...))
}

// ParseFiles parses each named file and prints an indented dump of its
// item tree to stdout via ast.Dump.
func ParseFiles(stdio mainer.Stdio, files ...string) error {
	chunks, err := parser.ParseFiles(files...)
	for _, ch := range chunks {
		fmt.Fprintf(stdio.Stdout, "%s:\n", ch.Name)
		ast.Dump(stdio.Stdout, ch.Items)
	}
	return err
}
