// Package config resolves depot settings from defaults, an optional
// depotrc file, DEPOT_* environment variables and command line flags, in
// increasing order of precedence.
package config
