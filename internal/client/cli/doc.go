// Package cli provides the interactive fileshare command-line client.
//
// It wires configuration, the HTTP API client and a small SQLite session
// store, then runs a REPL. Files can be sealed with a passphrase before
// upload (see cryptox) so the server only keeps ciphertext.
//
// Commands:
//   - register, login, admin, passwd, logout
//   - ls, upload, download
//   - activity, log
//   - chat, say, reply, attach
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
