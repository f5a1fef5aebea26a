package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDeclined is returned when the user refuses to overwrite an existing
// destination. Nothing on disk has been touched.
var ErrDeclined = errors.New("destination exists and overwrite was declined")

// ErrOverlap is returned when the destination and the template share a tree.
var ErrOverlap = errors.New("destination overlaps the template")

// Plan returns the absolute destination for a project named name under cwd.
func Plan(cwd, name string) (string, error) {
	dest, err := filepath.Abs(filepath.Join(cwd, name))
	if err != nil {
		return "", fmt.Errorf("resolving destination for %s: %w", name, err)
	}
	return dest, nil
}

// Prepare makes dest ready for materialization. When dest already exists,
// confirm is asked whether to overwrite: yes removes the existing tree, no
// returns ErrDeclined. The check and the removal are not atomic.
func Prepare(dest string, confirm func() (bool, error)) (existed bool, err error) {
	if _, err := os.Lstat(dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking destination %s: %w", dest, err)
	}

	ok, err := confirm()
	if err != nil {
		return true, err
	}
	if !ok {
		return true, ErrDeclined
	}

	if err := os.RemoveAll(dest); err != nil {
		return true, fmt.Errorf("removing existing %s: %w", dest, err)
	}
	return true, nil
}

// CheckOverlap fails with ErrOverlap when dest is src, lies inside src or
// contains src. Copying then would either recurse into its own output or
// remove the template on overwrite.
func CheckOverlap(src, dest string) error {
	s, d := resolvePath(src), resolvePath(dest)
	if within(s, d) || within(d, s) {
		return fmt.Errorf("%w: %s and %s", ErrOverlap, dest, src)
	}
	return nil
}

// within reports whether path is parent or below it.
func within(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// resolvePath makes p absolute and follows symlinks as far as it exists.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs))
	}
	return abs
}
