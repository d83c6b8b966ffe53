package maincmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/machine"
	"github.com/mna/mainer"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, RunFiles(ctx, stdio, args...))
}

// RunFiles loads each named file, resolves and lowers its fn main, and
// interprets it directly through lang/machine, writing debug output to
// stdio.Stdout.
func RunFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	for _, f := range files {
		if err := runFile(ctx, stdio, f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}

func runFile(ctx context.Context, stdio mainer.Stdio, file string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	dir, name := filepath.Split(file)

	e := engine.New()
	e.SetProjectRoot(dir)
	if err := e.LoadFile(name); err != nil {
		return err
	}

	entryID := e.ProcessFn("main", e.Scopes.Root())

	th := machine.NewThread(e)
	th.Stdout = stdio.Stdout
	_, err = th.Run(ctx, entryID, nil)
	return err
}
