package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/justyntemme/protoplug/pkg/framework/plugin"
)

// loadState restores from path. A missing file is not an error.
func loadState(store plugin.StateStore, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return store.SetState(f)
}

// saveState writes through a temporary file so a failed save keeps the old state
func saveState(store plugin.StateStore, path string) error {
	if path == "" {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".protoplug-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := store.GetState(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encode state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
