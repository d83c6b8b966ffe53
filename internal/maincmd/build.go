package maincmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mna/ferrox/lang/cemit"
	"github.com/mna/mainer"
)

func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, BuildFiles(stdio, c.Output, args...))
}

// BuildFiles emits C source for each named file and invokes the host C
// compiler on it, writing the resulting binary's path to stdio.Stdout.
// output names the produced binary; when empty, each input file's base
// name (without extension) is used.
func BuildFiles(stdio mainer.Stdio, output string, files ...string) error {
	for _, f := range files {
		src, err := emitFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}

		name := output
		if name == "" {
			base := filepath.Base(f)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		bin, err := cemit.CompileToBinary(src, name)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		fmt.Fprintln(stdio.Stdout, bin)
	}
	return nil
}
