package bundler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/pagebundle/registry"
)

// FallbackFormat is the placeholder stored for a page that
// could not be read. {filename} is the registry file name.
const FallbackFormat = "# Error\nCould not load {filename}"

// ErrInvalidUTF8 reports page content that is not valid
// UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// FallbackMessage renders FallbackFormat for filename.
func FallbackMessage(filename string) string {
	return fasttemplate.ExecuteStringStd(
		FallbackFormat, "{", "}",
		map[string]interface{}{"filename": filename},
	)
}

// BuildContentMap reads every registry page below basePath
// in registry order. Unreadable pages are logged on logger
// and stored as FallbackMessage(file). A nil logger means
// slog.Default().
func BuildContentMap(
	reg registry.Registry,
	basePath string,
	logger *slog.Logger,
) *ContentMap {
	if logger == nil {
		logger = slog.Default()
	}

	cm := newContentMap(len(reg))

	for _, pg := range reg {
		pa := filepath.Join(basePath, pg.File)

		content, err := readPage(pa)
		if err != nil {
			logger.Error(
				"reading page",
				"id", pg.ID,
				"path", pa,
				"error", err,
			)

			cm.set(Entry{
				ID:       pg.ID,
				File:     pg.File,
				Content:  FallbackMessage(pg.File),
				Fallback: true,
			})

			continue
		}

		cm.set(Entry{
			ID:      pg.ID,
			File:    pg.File,
			Content: content,
		})
	}

	return cm
}

// readPage returns the full UTF-8 text of the file at path.
// The file is closed before returning on every path.
func readPage(path string) (result string, retErr error) {
	const errCtx = "reading page"

	fi, err := os.Open(path) //nolint:gosec // path from registry
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	content, err := io.ReadAll(fi)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if !utf8.Valid(content) {
		return "", fmt.Errorf(
			"%s: %s: %w", errCtx, path, ErrInvalidUTF8,
		)
	}

	return string(content), nil
}
