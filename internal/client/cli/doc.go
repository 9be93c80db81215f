// Package cli provides the interactive foodlog command-line client.
//
// Commands:
//   - register / login / logout
//   - list [query], add, edit <id>, delete <id>
//   - profile (show and edit, including the avatar)
//
// Edits go through the forms package, so a failed save leaves the form as
// the user typed it and a second save cannot start while one is running.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
