// Package registry defines the ordered table of documentation pages that
// the bundler reads. A Registry pairs short page identifiers with file
// names relative to a base directory. Default returns the built-in guide
// table; LoadManifest reads an alternative table from a YAML file.
package registry
