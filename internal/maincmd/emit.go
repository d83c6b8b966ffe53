package maincmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mna/ferrox/lang/cemit"
	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/mainer"
)

func (c *Cmd) Emit(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, EmitFiles(stdio, args...))
}

// EmitFiles loads each named file, resolves and lowers its fn main, and
// writes the generated C source for it (and everything it transitively
// uses) to stdio.Stdout.
func EmitFiles(stdio mainer.Stdio, files ...string) error {
	for _, f := range files {
		src, err := emitFile(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		fmt.Fprint(stdio.Stdout, src)
	}
	return nil
}

func emitFile(file string) (src string, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = "", fmt.Errorf("%v", r)
		}
	}()

	dir, name := filepath.Split(file)

	e := engine.New()
	e.SetProjectRoot(dir)
	if err := e.LoadFile(name); err != nil {
		return "", err
	}

	entryID := e.ProcessFn("main", e.Scopes.Root())
	return cemit.EmitProgram(e, entryID), nil
}
