package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// load returns the raw bytes stored for key, or nil when the key was never
// written.
func (kv *KeyValue) load(key string) ([]byte, error) {
	b, err := os.ReadFile(kv.Path(key))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// persist replaces the file for key with b. Readers see either the old or
// the new content, never a partial write.
func (kv *KeyValue) persist(key string, b []byte) (err error) {
	if err := os.MkdirAll(kv.dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", kv.dir, err)
	}

	target := kv.Path(key)
	f, err := os.CreateTemp(kv.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", key, err)
	}
	staged := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(staged)
		}
	}()

	if err = writeAll(f, b); err != nil {
		return fmt.Errorf("stage %s: %w", key, err)
	}
	if err = os.Rename(staged, target); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

// writeAll writes b with owner-only permissions, syncs and closes f.
func writeAll(f *os.File, b []byte) error {
	if err := f.Chmod(fileMode); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
