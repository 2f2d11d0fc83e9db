// Package dockerd wraps the Docker Engine API client behind the small
// Daemon interface the rest of stackwatch consumes.
//
// ListContainers flattens list, inspect, and one-shot stats calls into
// plain Container records so callers never see SDK types. StreamLogs
// returns a cancellable follow stream that demultiplexes stdout/stderr
// frames for non-TTY containers. Errors are classified by helpers here
// (not found, unreachable) so the UI can phrase them for a human.
package dockerd
