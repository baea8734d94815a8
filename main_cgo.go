//go:build cgo

package main

// cgo builds can also open the "sqlite3" driver name.
import _ "github.com/mattn/go-sqlite3"
