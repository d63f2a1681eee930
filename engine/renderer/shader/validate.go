package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// ErrCompile is returned when WGSL source fails to compile.
var ErrCompile = errors.New("shader: compile failed")

// Validate compiles WGSL source to SPIR-V to check that it is well formed.
//
// Parameters:
//   - source: the WGSL source, after pre-processing
//
// Returns:
//   - []byte: the SPIR-V module
//   - error: ErrCompile wrapping the compiler's error
func Validate(source string) ([]byte, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return spirv, nil
}
