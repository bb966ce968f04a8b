// Package metrics counts engine outcomes and times version control calls.
// Metrics are kept in a private registry and can be written to a file in
// the node exporter textfile format at the end of a command.
package metrics
