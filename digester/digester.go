package digester

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegular is returned when a bundle path names a
// directory or another non-regular file.
var ErrNotRegular = errors.New("not a regular file")

// Sum returns the hex SHA-256 digest of data.
func Sum(data []byte) string {
	ha := sha256.Sum256(data)

	return hex.EncodeToString(ha[:])
}

// SumReader returns the hex SHA-256 digest of everything
// read from rd.
func SumReader(rd io.Reader) (string, error) {
	ha := sha256.New()

	if _, err := io.Copy(ha, rd); err != nil {
		return "", err
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// Matches reports whether the bundle file at path already
// holds exactly data. A missing file never matches; a
// file of different size is rejected without hashing.
func Matches(path string, data []byte) (ok bool, retErr error) {
	const errCtx = "matching bundle"

	fi, err := os.Open(path) //nolint:gosec // path from CLI flag
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	st, err := fi.Stat()
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if !st.Mode().IsRegular() {
		return false, fmt.Errorf(
			"%s: %s: %w", errCtx, path, ErrNotRegular,
		)
	}

	if st.Size() != int64(len(data)) {
		return false, nil
	}

	stored, err := SumReader(fi)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return stored == Sum(data), nil
}
