package cmd

import (
	"io"
	"os"
	"path/filepath"
)

func openInput(args []string, stdin io.Reader) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return stdin, func() error { return nil }, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

// openOutput returns the writer for path. A file is written next to path
// under a temporary name and only replaces path when finish is called with
// keep set. Otherwise the temporary file is removed and path is untouched.
func openOutput(
	path string,
	stdout io.Writer,
) (io.Writer, func(keep bool) error, error) {
	if path == "" || path == "-" {
		return stdout, func(bool) error { return nil }, nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, nil, err
	}

	finish := func(keep bool) error {
		err := f.Close()
		if keep && err == nil {
			err = os.Chmod(f.Name(), 0o644)
		}

		if keep && err == nil {
			err = os.Rename(f.Name(), path)
		}

		if !keep || err != nil {
			os.Remove(f.Name())
		}

		return err
	}

	return f, finish, nil
}
