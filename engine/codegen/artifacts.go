package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-gbuffer/engine/schema"
)

// ErrDrift is returned by Check when an artifact on disk differs from what the schema generates.
var ErrDrift = errors.New("generated artifact is out of date")

// ArtifactKind identifies one generated output.
type ArtifactKind int

const (
	ArtifactGo ArtifactKind = iota
	ArtifactWGSL
	ArtifactWGSLBindings
	ArtifactMSL
)

// String returns a short name for the artifact kind.
func (k ArtifactKind) String() string {
	switch k {
	case ArtifactGo:
		return "go"
	case ArtifactWGSL:
		return "wgsl"
	case ArtifactWGSLBindings:
		return "wgsl_bindings"
	case ArtifactMSL:
		return "msl"
	}
	return fmt.Sprintf("ArtifactKind(%d)", int(k))
}

// Artifact is one generated file and its destination.
type Artifact struct {
	Kind    ArtifactKind
	Path    string
	Content []byte
}

// Artifacts generates every output named by cfg.
//
// Parameters:
//   - s: the schema
//   - cfg: the output configuration; empty paths are skipped
//
// Returns:
//   - []Artifact: the generated artifacts in a stable order
//   - error: the first generation error
func (g *Generator) Artifacts(s *schema.Schema, cfg Config) ([]Artifact, error) {
	type step struct {
		kind ArtifactKind
		path string
		skip bool
		gen  func(*schema.Schema) ([]byte, error)
	}
	steps := []step{
		{ArtifactGo, cfg.GoOut, false, g.Go},
		{ArtifactWGSL, cfg.WGSLOut, false, g.WGSL},
		{ArtifactWGSLBindings, cfg.WGSLBindOut, cfg.SkipBindings, g.WGSLBindings},
		{ArtifactMSL, cfg.MSLOut, cfg.SkipMSL, g.MSL},
	}

	var out []Artifact
	for _, st := range steps {
		if st.skip || st.path == "" {
			continue
		}
		content, err := st.gen(s)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", st.kind, err)
		}
		out = append(out, Artifact{Kind: st.kind, Path: st.path, Content: content})
	}
	return out, nil
}

// Write writes each artifact to its path, creating parent directories as needed.
//
// Parameters:
//   - artifacts: the artifacts to write
//
// Returns:
//   - error: the first write error
func (g *Generator) Write(artifacts []Artifact) error {
	for _, a := range artifacts {
		if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.Path, err)
		}
		if err := os.WriteFile(a.Path, a.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.Path, err)
		}
		g.logger.Info("wrote artifact", "kind", a.Kind.String(), "path", a.Path, "bytes", len(a.Content))
	}
	return nil
}

// Check compares each artifact with the file at its path. Go sources are compared after
// gofmt normalisation; shader sources are compared byte for byte.
//
// Parameters:
//   - artifacts: the freshly generated artifacts
//
// Returns:
//   - error: nil when every file matches, otherwise ErrDrift (wrapped) naming each stale path
func (g *Generator) Check(artifacts []Artifact) error {
	var errs []error
	for _, a := range artifacts {
		onDisk, err := os.ReadFile(a.Path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w: %w", a.Path, ErrDrift, err))
			continue
		}
		want := a.Content
		if a.Kind == ArtifactGo {
			onDisk, want = gofmt(onDisk), gofmt(want)
		}
		if !bytes.Equal(onDisk, want) {
			errs = append(errs, fmt.Errorf("%s: %w", a.Path, ErrDrift))
			continue
		}
		g.logger.Debug("artifact up to date", "kind", a.Kind.String(), "path", a.Path)
	}
	return errors.Join(errs...)
}

// gofmt returns src in canonical gofmt form, or src unchanged if it does not parse.
func gofmt(src []byte) []byte {
	out, err := format.Source(src)
	if err != nil {
		return src
	}
	return out
}
