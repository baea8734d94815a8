package engine

import (
	"bufio"
	"os"
)

// writeFile creates or truncates path and writes content through a buffer,
// flushing and closing explicitly so every failure is reported.
func writeFile(path string, content []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &FileWriteError{Path: path, Op: "create", Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileWriteError{Path: path, Op: "close", Cause: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.Write(content); err != nil {
		return &FileWriteError{Path: path, Op: "write", Cause: err}
	}
	if err := w.Flush(); err != nil {
		return &FileWriteError{Path: path, Op: "flush", Cause: err}
	}
	return nil
}
