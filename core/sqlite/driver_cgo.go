//go:build cgo_sqlite

// CGO SQLite driver, selected by the cgo_sqlite build tag. Requires
// CGO_ENABLED=1; faster than the pure Go driver on large exports.
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)

const (
	driverName    = "sqlite3"
	driverType    = "cgo"
	driverPackage = "github.com/mattn/go-sqlite3"
)
