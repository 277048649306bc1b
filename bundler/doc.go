// Package bundler reads the pages named by a registry into an ordered
// content map and serializes that map as a JavaScript assignment
// statement whose right-hand side is an indented JSON object literal.
//
// BuildContentMap never fails as a whole: a page that cannot be read
// is logged and replaced by a placeholder produced by FallbackMessage,
// so the map always holds exactly one entry per registry page.
// Serialize renders the map with the default prefix and variable name;
// SerializeWith accepts Options.
package bundler
