// Package manifest defines the project manifest model and its persistence.
// A manifest can be stored as YAML, JSON, TOML or HCL; the format is chosen
// from the file extension and every format yields the same Project value.
package manifest
