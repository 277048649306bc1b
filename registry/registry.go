package registry

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultBasePath is the directory the built-in registry
// file names are relative to.
const DefaultBasePath = "docs/guide/"

var (
	// ErrEmptyID is returned for a page without identifier.
	ErrEmptyID = errors.New("empty page id")

	// ErrDuplicateID is returned when two pages share an
	// identifier.
	ErrDuplicateID = errors.New("duplicate page id")

	// ErrInvalidFile is returned when a page file is empty,
	// absolute, or escapes the base directory.
	ErrInvalidFile = errors.New("invalid page file")
)

// Page maps a short identifier to a file name relative to
// the base directory.
type Page struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// Registry is the ordered list of pages to bundle. Order
// drives the key order of the serialized output.
type Registry []Page

var defaultPages = Registry{
	{ID: "home", File: "README.md"},
	{ID: "installation", File: "installation.md"},
	{ID: "getting-started", File: "getting-started.md"},
	{ID: "configuration", File: "configuration.md"},
	{ID: "factories", File: "factories.md"},
	{ID: "expectations", File: "expectations.md"},
	{ID: "authentication", File: "authentication.md"},
	{ID: "database-isolation", File: "database-isolation.md"},
	{ID: "browser-testing", File: "browser-testing.md"},
	{ID: "rest-api-testing", File: "rest-api-testing.md"},
	{ID: "ajax-testing", File: "ajax-testing.md"},
	{ID: "architecture-testing", File: "architecture-testing.md"},
	{ID: "mocking", File: "mocking.md"},
	{ID: "fixtures", File: "fixtures.md"},
	{ID: "snapshots", File: "snapshots.md"},
	{ID: "visual-regression", File: "visual-regression.md"},
	{ID: "accessibility-testing", File: "accessibility-testing.md"},
	{ID: "woocommerce", File: "woocommerce.md"},
	{ID: "gutenberg", File: "gutenberg.md"},
	{ID: "ci-cd", File: "ci-cd.md"},
	{ID: "migration", File: "migration.md"},
}

// Default returns a copy of the built-in guide registry.
func Default() Registry {
	reg := make(Registry, len(defaultPages))
	copy(reg, defaultPages)

	return reg
}

// IDs returns the page identifiers in registry order.
func (reg Registry) IDs() []string {
	ids := make([]string, 0, len(reg))
	for _, pg := range reg {
		ids = append(ids, pg.ID)
	}

	return ids
}

// Validate checks that every identifier is non-empty and
// unique and that every file is a local relative path.
func (reg Registry) Validate() error {
	const errCtx = "validating registry"

	seen := make(map[string]int, len(reg))

	for idx, pg := range reg {
		if pg.ID == "" {
			return fmt.Errorf(
				"%s: page %d: %w", errCtx, idx, ErrEmptyID,
			)
		}

		if prev, ok := seen[pg.ID]; ok {
			return fmt.Errorf(
				"%s: page %d %q (first at %d): %w",
				errCtx, idx, pg.ID, prev, ErrDuplicateID,
			)
		}

		seen[pg.ID] = idx

		if pg.File == "" || !filepath.IsLocal(pg.File) {
			return fmt.Errorf(
				"%s: page %q file %q: %w",
				errCtx, pg.ID, pg.File, ErrInvalidFile,
			)
		}
	}

	return nil
}
