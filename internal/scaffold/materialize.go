package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// Observer is notified while a template is copied. It is purely cosmetic:
// callbacks cannot influence the copy.
type Observer interface {
	OnStart(src, dst string)
	OnFile(rel string)
	OnDone(files int, err error)
}

// Result holds the outcome of a materialization.
type Result struct {
	Source      string
	Destination string
	Files       []string // relative paths of copied files and links, in walk order
}

// MaterializationError wraps any failure while copying a template.
type MaterializationError struct {
	Source      string
	Destination string
	Path        string // relative path being copied when the failure happened
	Err         error
}

func (e *MaterializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("copying %s to %s: %v", e.Source, e.Destination, e.Err)
	}
	return fmt.Sprintf("copying %s to %s: %s: %v", e.Source, e.Destination, e.Path, e.Err)
}

func (e *MaterializationError) Unwrap() error {
	return e.Err
}

// Materialize recursively copies src into dst, preserving relative paths,
// file contents and permission bits. Symlinks are recreated, not followed,
// and special files are skipped. On error the partially written dst is left
// in place.
func Materialize(ctx context.Context, src, dst string, obs Observer) (*Result, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	obs.OnStart(src, dst)

	result := &Result{Source: src, Destination: dst}
	err := copyTree(ctx, src, dst, result, obs)
	obs.OnDone(len(result.Files), err)
	if err != nil {
		return result, err
	}
	return result, nil
}

func copyTree(ctx context.Context, src, dst string, result *Result, obs Observer) error {
	fail := func(rel string, err error) error {
		return &MaterializationError{Source: src, Destination: dst, Path: rel, Err: err}
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fail("", err)
	}
	if !srcInfo.IsDir() {
		return fail("", fmt.Errorf("%s is not a directory", src))
	}

	// current is the entry being copied; pending is a file or link that is
	// reported once the copy has moved past it.
	var current, pending string
	flush := func() {
		if pending == "" {
			return
		}
		result.Files = append(result.Files, pending)
		obs.OnFile(pending)
		pending = ""
	}

	opt := copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		Skip: func(info os.FileInfo, path, _ string) (bool, error) {
			flush()
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return false, fail(path, err)
			}
			current = filepath.ToSlash(rel)
			if err := ctx.Err(); err != nil {
				return false, fail(current, err)
			}

			mode := info.Mode()
			switch {
			case mode.IsDir():
			case mode&fs.ModeSymlink != 0, mode.IsRegular():
				pending = current
			default:
				// Sockets, devices and pipes have no place in a template.
				return true, nil
			}
			return false, nil
		},
	}

	if err := copy.Copy(src, dst, opt); err != nil {
		var merr *MaterializationError
		if errors.As(err, &merr) {
			return merr
		}
		return fail(current, err)
	}
	flush()
	return nil
}

type nopObserver struct{}

func (nopObserver) OnStart(string, string) {}
func (nopObserver) OnFile(string)          {}
func (nopObserver) OnDone(int, error)      {}
