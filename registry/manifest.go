package registry

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest is the YAML form of a registry together with
// the directory its files are relative to.
//
//	base_path: docs/guide
//	pages:
//	  - id: home
//	    file: README.md
type Manifest struct {
	BasePath string   `yaml:"base_path"`
	Pages    Registry `yaml:"pages"`
}

// LoadManifest reads and validates a YAML manifest. Unknown
// fields are rejected. An empty base_path falls back to
// DefaultBasePath.
func LoadManifest(path string) (*Manifest, error) {
	const errCtx = "loading manifest"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var mf Manifest

	if err := yaml.UnmarshalWithOptions(
		content, &mf, yaml.DisallowUnknownField(),
	); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding %s: %w", errCtx, path, err,
		)
	}

	if err := mf.Pages.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if mf.BasePath == "" {
		mf.BasePath = DefaultBasePath
	}

	return &mf, nil
}
