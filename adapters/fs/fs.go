// Package fs provides Workspace implementations: a directory on disk with
// atomic writes, and an in-memory tree for tests and previews.
package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/artpar/reacthub/ports"
)

// ErrOutsideWorkspace is returned for paths that escape the workspace root.
var ErrOutsideWorkspace = errors.New("path escapes workspace")

func clean(p string) (string, error) {
	slashed := filepath.ToSlash(p)
	if path.IsAbs(slashed) || strings.Contains("/"+slashed+"/", "/../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, p)
	}
	return strings.TrimPrefix(path.Clean("/"+slashed), "/"), nil
}

// -----------------------------------------------------------------------------
// Dir
// -----------------------------------------------------------------------------

// Dir is a workspace backed by a directory on disk.
type Dir struct {
	root string
}

// NewDir creates a workspace rooted at root.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute root directory.
func (d *Dir) Root() string { return d.root }

func (d *Dir) abs(p string) (string, error) {
	c, err := clean(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(c)), nil
}

// WriteFile atomically replaces the file at p.
func (d *Dir) WriteFile(p string, data []byte, perm iofs.FileMode) error {
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return WriteFileAtomic(full, data, perm)
}

// ReadFile reads the file at p.
func (d *Dir) ReadFile(p string) ([]byte, error) {
	full, err := d.abs(p)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// Exists reports whether p exists.
func (d *Dir) Exists(p string) (bool, error) {
	full, err := d.abs(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// MkdirAll creates the directory p.
func (d *Dir) MkdirAll(p string) error {
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0o755)
}

// Sub returns the workspace rooted at p. An escaping p yields the
// receiver's root.
func (d *Dir) Sub(p string) ports.Workspace {
	full, err := d.abs(p)
	if err != nil {
		return d
	}
	return &Dir{root: full}
}

// WriteFileAtomic writes data to path using a temp file, fsync and rename in
// the same directory. On failure the original file is left unchanged.
func WriteFileAtomic(path string, data []byte, perm iofs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reacthub-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}

// -----------------------------------------------------------------------------
// Memory
// -----------------------------------------------------------------------------

type memTree struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// Memory is an in-memory workspace. Sub workspaces share the same tree.
type Memory struct {
	tree   *memTree
	prefix string
}

// NewMemory creates an empty in-memory workspace.
func NewMemory() *Memory {
	return &Memory{tree: &memTree{files: map[string][]byte{}, dirs: map[string]bool{}}}
}

// Root returns a virtual root for logs.
func (m *Memory) Root() string { return "/" + m.prefix }

func (m *Memory) key(p string) (string, error) {
	c, err := clean(p)
	if err != nil {
		return "", err
	}
	return path.Join(m.prefix, c), nil
}

// WriteFile stores a copy of data at p.
func (m *Memory) WriteFile(p string, data []byte, _ iofs.FileMode) error {
	k, err := m.key(p)
	if err != nil {
		return err
	}
	m.tree.mu.Lock()
	defer m.tree.mu.Unlock()
	m.tree.files[k] = append([]byte(nil), data...)
	for dir := path.Dir(k); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.tree.dirs[dir] = true
	}
	return nil
}

// ReadFile returns a copy of the file at p.
func (m *Memory) ReadFile(p string) ([]byte, error) {
	k, err := m.key(p)
	if err != nil {
		return nil, err
	}
	m.tree.mu.RLock()
	defer m.tree.mu.RUnlock()
	data, ok := m.tree.files[k]
	if !ok {
		return nil, &iofs.PathError{Op: "read", Path: p, Err: iofs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Exists reports whether p is a stored file or directory.
func (m *Memory) Exists(p string) (bool, error) {
	k, err := m.key(p)
	if err != nil {
		return false, err
	}
	m.tree.mu.RLock()
	defer m.tree.mu.RUnlock()
	_, isFile := m.tree.files[k]
	return isFile || m.tree.dirs[k] || k == m.prefix, nil
}

// MkdirAll records the directory p and its parents.
func (m *Memory) MkdirAll(p string) error {
	k, err := m.key(p)
	if err != nil {
		return err
	}
	m.tree.mu.Lock()
	defer m.tree.mu.Unlock()
	for dir := k; dir != "." && dir != "" && dir != "/"; dir = path.Dir(dir) {
		m.tree.dirs[dir] = true
	}
	return nil
}

// Sub returns the workspace rooted at p.
func (m *Memory) Sub(p string) ports.Workspace {
	k, err := m.key(p)
	if err != nil {
		return m
	}
	return &Memory{tree: m.tree, prefix: k}
}

// Files lists stored file paths relative to this workspace, sorted.
func (m *Memory) Files() []string {
	m.tree.mu.RLock()
	defer m.tree.mu.RUnlock()

	var out []string
	for k := range m.tree.files {
		if m.prefix == "" {
			out = append(out, k)
			continue
		}
		if rel, ok := strings.CutPrefix(k, m.prefix+"/"); ok {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

var (
	_ ports.Workspace = (*Dir)(nil)
	_ ports.Workspace = (*Memory)(nil)
)
