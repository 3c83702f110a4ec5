package asset

import (
	"fmt"
	"os"
)

// ReadShader reads a GLSL file into a null-terminated string for gl.Strs.
func ReadShader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %q: %w", path, err)
	}
	return Terminate(string(b)), nil
}

// Terminate appends a NUL unless src already ends with one.
func Terminate(src string) string {
	if len(src) > 0 && src[len(src)-1] == 0 {
		return src
	}
	return src + "\x00"
}
