// Package lock handles the depot.lock.yaml file.
// The lock file records the exact revision fetched for each dependency,
// keyed by "{repository}/{name}", so repeated syncs are deterministic.
package lock
