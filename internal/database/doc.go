// Package database provides SQLite-based local storage for housepred.
//
// KVStore is a small string key-value store, the command line counterpart
// of browser local storage. It holds the user profile under a single key.
//
// The store uses modernc.org/sqlite, a CGO-free driver, so the database is
// a single file in the XDG data directory and the binary cross-compiles
// without a C toolchain.
package database
