package page

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write replaces the file at path with doc. The document goes to a temporary
// file in the same directory first, so a failed write leaves any existing
// page untouched.
func Write(path string, doc []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrWrite, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w %s: %v", ErrWrite, path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w %s: %v", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w %s: %v", ErrWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w %s: %v", ErrWrite, path, err)
	}
	return nil
}
