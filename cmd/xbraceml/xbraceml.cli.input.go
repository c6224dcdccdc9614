package main

import (
	"io"
	"os"
	"path/filepath"
)

// readInput reads a document from a file or stdin
func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == InputSourceStdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	return string(data), err
}

// writeOutput writes the converted document to stdout or a file. Files are
// replaced through a temporary sibling so a watcher never sees half a document.
func writeOutput(path, data string, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := io.WriteString(stdout, data)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(FilePermissions); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
