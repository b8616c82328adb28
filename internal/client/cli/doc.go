// Package cli provides the interactive coursekeeper command-line client.
//
// It wires configuration, the local key-value store, the course catalog and
// the state manager, then runs a line-oriented REPL. Each command maps to one
// manager intent; the manager re-renders the screen through TextRenderer
// after every successful intent.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See NewApp, runREPL and TextRenderer for details.
package cli
