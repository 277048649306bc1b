// Package digester computes SHA-256 digests of generated bundles and of
// bundle files on disk, so a checked-in bundle can be compared with a
// freshly generated one without rewriting it.
package digester
