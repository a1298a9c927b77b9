// Package processor drives a complete translation job: it wires the
// subtitle parser, cache store, provider client and translation engine
// together according to the command-line flags, and reports progress
// and a summary on the terminal.
package processor
