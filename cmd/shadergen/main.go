// Command shadergen generates the Go, WGSL and Metal declarations of the shared shader
// types from the layout schema, or checks that the checked-in copies are up to date.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/codegen"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

func main() {
	configPath := flag.String("config", "", "YAML generator config (default: built-in paths)")
	schemaPath := flag.String("schema", "", "schema file, overrides the config")
	check := flag.Bool("check", false, "compare generated output with the files on disk instead of writing")
	validate := flag.Bool("validate", false, "compile the generated WGSL with naga")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shadergen [flags]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *configPath, *schemaPath, *check, *validate); err != nil {
		logger.Error("shadergen failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, schemaPath string, check, validate bool) error {
	cfg := codegen.DefaultConfig()
	if configPath != "" {
		loaded, err := codegen.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if schemaPath != "" {
		cfg.Schema = schemaPath
	}

	s, err := schema.LoadFile(cfg.Schema)
	if err != nil {
		return err
	}
	logger.Debug("loaded schema", "path", cfg.Schema, "enums", len(s.Enums), "records", len(s.Records))

	opts := []codegen.GeneratorOption{
		codegen.WithLogger(logger),
		codegen.WithSource(filepath.Base(cfg.Schema)),
	}
	if cfg.Package != "" {
		opts = append(opts, codegen.WithPackage(cfg.Package))
	}
	gen := codegen.NewGenerator(opts...)

	artifacts, err := gen.Artifacts(s, cfg)
	if err != nil {
		return err
	}

	if validate {
		if err := validateWGSL(logger, artifacts); err != nil {
			return err
		}
	}

	if check {
		if err := gen.Check(artifacts); err != nil {
			if errors.Is(err, codegen.ErrDrift) {
				return fmt.Errorf("generated files are stale, rerun shadergen: %w", err)
			}
			return err
		}
		logger.Info("generated files are up to date", "count", len(artifacts))
		return nil
	}
	return gen.Write(artifacts)
}

// validateWGSL compiles the generated type declarations, followed by the bindings when
// they were generated, as a single module.
func validateWGSL(logger *slog.Logger, artifacts []codegen.Artifact) error {
	var types, bindings string
	for _, a := range artifacts {
		switch a.Kind {
		case codegen.ArtifactWGSL:
			types = string(a.Content)
		case codegen.ArtifactWGSLBindings:
			bindings = string(a.Content)
		}
	}
	if types == "" {
		logger.Warn("no WGSL output configured, skipping validation")
		return nil
	}

	spirv, err := shader.Validate(types + "\n" + bindings)
	if err != nil {
		return err
	}
	logger.Info("generated WGSL compiled", "spirv_bytes", len(spirv))
	return nil
}
