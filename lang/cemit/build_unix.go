//go:build unix

package cemit

import "os/exec"

// hostCompile invokes clang the way compile.rs's #[cfg(unix)] compile_file
// does: `clang -w <path> -o <out>`, warnings suppressed, and the output
// binary left at outputPath with no extension.
func hostCompile(sourcePath, outputPath string) *exec.Cmd {
	return exec.Command("clang", "-w", sourcePath, "-o", outputPath)
}
