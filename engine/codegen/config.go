package codegen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config names the schema file and the path of every generated artifact.
// Relative paths are resolved against the working directory of the caller.
type Config struct {
	Schema       string `yaml:"schema"`
	Package      string `yaml:"package"`
	GoOut        string `yaml:"go_out"`
	WGSLOut      string `yaml:"wgsl_out"`
	WGSLBindOut  string `yaml:"wgsl_bindings_out"`
	MSLOut       string `yaml:"msl_out"`
	SkipMSL      bool   `yaml:"skip_msl"`
	SkipBindings bool   `yaml:"skip_bindings"`
}

// DefaultConfig returns the repository layout used by cmd/shadergen.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		Schema:      "engine/schema/assets/shader_types.yaml",
		GoOut:       "engine/shadertypes/shader_types_gen.go",
		WGSLOut:     "engine/shadertypes/assets/shader_types.wgsl",
		WGSLBindOut: "engine/shadertypes/assets/shader_bindings.wgsl",
		MSLOut:      "engine/shadertypes/assets/ShaderTypes.h",
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep their
// DefaultConfig values.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - Config: the merged configuration
//   - error: a read or parse error
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
