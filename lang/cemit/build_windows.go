//go:build windows

package cemit

import (
	"fmt"
	"os/exec"
)

// hostCompile invokes cl.exe the way compile.rs's #[cfg(windows)]
// compile_file does: `cl.exe /w /Fe<out> /Fo<obj> <path>`, warnings
// suppressed, object file left alongside the executable.
func hostCompile(sourcePath, outputPath string) *exec.Cmd {
	objPath := outputPath + ".obj"
	return exec.Command("cl.exe", "/w", fmt.Sprintf("/Fe%s", outputPath), fmt.Sprintf("/Fo%s", objPath), sourcePath)
}
