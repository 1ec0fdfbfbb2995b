// Package cli implements the interactive terminal client: a small REPL over
// the tracker services, with background sync running while the program is
// open and a final best-effort sync on exit.
package cli
