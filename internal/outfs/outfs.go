// Package outfs provides a root-locked view of the output directory. Every
// artifact and rendered file the tool emits goes through a Dir, so a malformed
// token path or target name can never escape the configured output root.
package outfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Dir is an output directory with all operations resolved relative to a fixed,
// symlink-free root.
type Dir struct {
	absRoot string
}

// New binds all future operations to the given root directory, creating it if
// it does not exist. The root is resolved to an absolute, symlink-free path.
func New(root string) (*Dir, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("outfs: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("outfs: root is not a directory")
	}
	return &Dir{absRoot: abs}, nil
}

// Root returns the absolute root directory bound to this Dir.
func (d *Dir) Root() string {
	if d == nil {
		return ""
	}
	return d.absRoot
}

// WriteFile writes content to a file under the root, creating parent
// directories as needed.
func (d *Dir) WriteFile(name string, content []byte) error {
	p, err := d.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, content, 0o644)
}

// ReadFile reads a file under the root.
func (d *Dir) ReadFile(name string) ([]byte, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("outfs: path is a directory")
	}
	return os.ReadFile(p)
}

// ReadDir lists entries for a directory under the root.
func (d *Dir) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(p)
}

func (d *Dir) resolve(name string) (string, error) {
	if d == nil {
		return "", errors.New("outfs: directory not configured")
	}
	if name == "" {
		return "", errors.New("outfs: empty path")
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || (runtime.GOOS == "windows" && filepath.VolumeName(clean) != "") {
		return "", fmt.Errorf("outfs: absolute path not allowed: %s", name)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("outfs: path traversal not allowed: %s", name)
	}
	return filepath.Join(d.absRoot, clean), nil
}
