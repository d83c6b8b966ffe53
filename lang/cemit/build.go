package cemit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// CompileToBinary writes source to a temporary .c file named after
// outputName and invokes the host C compiler on it, mirroring
// compile.rs's compile_bytecode: the C text is never handed to the host
// compiler in memory, it always goes through a file on disk first. It
// returns the path to the produced executable.
func CompileToBinary(source, outputName string) (string, error) {
	dir := os.TempDir()
	cPath := filepath.Join(dir, outputName+".c")
	if err := os.WriteFile(cPath, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("cemit: writing generated C source: %w", err)
	}

	outPath := filepath.Join(dir, outputName)
	cmd := hostCompile(cPath, outPath)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cemit: host compiler failed: %w\n%s", err, combined.String())
	}
	return outPath, nil
}
