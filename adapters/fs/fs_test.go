package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/artpar/reacthub/ports"
	"github.com/google/go-cmp/cmp"
)

func workspaces(t *testing.T) map[string]ports.Workspace {
	t.Helper()
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir error: %v", err)
	}
	return map[string]ports.Workspace{"dir": dir, "memory": NewMemory()}
}

func TestWorkspace_WriteRead(t *testing.T) {
	for name, ws := range workspaces(t) {
		t.Run(name, func(t *testing.T) {
			if err := ws.WriteFile("src/pages/trainers/index.tsx", []byte("v1"), 0o644); err != nil {
				t.Fatalf("WriteFile error: %v", err)
			}
			if err := ws.WriteFile("src/pages/trainers/index.tsx", []byte("v2"), 0o644); err != nil {
				t.Fatalf("overwrite error: %v", err)
			}

			got, err := ws.ReadFile("src/pages/trainers/index.tsx")
			if err != nil || string(got) != "v2" {
				t.Errorf("ReadFile = %q, %v, want v2", got, err)
			}

			for _, p := range []string{"src", "src/pages/trainers", "src/pages/trainers/index.tsx"} {
				if ok, err := ws.Exists(p); !ok || err != nil {
					t.Errorf("Exists(%q) = %v, %v, want true", p, ok, err)
				}
			}
			if ok, _ := ws.Exists("src/missing.ts"); ok {
				t.Error("Exists(missing) = true")
			}
			if _, err := ws.ReadFile("src/missing.ts"); !errors.Is(err, iofs.ErrNotExist) {
				t.Errorf("ReadFile(missing) error = %v, want ErrNotExist", err)
			}
		})
	}
}

func TestWorkspace_Sub(t *testing.T) {
	for name, ws := range workspaces(t) {
		t.Run(name, func(t *testing.T) {
			sub := ws.Sub("gym")
			if err := sub.MkdirAll("src/components/ui"); err != nil {
				t.Fatalf("MkdirAll error: %v", err)
			}
			if err := sub.WriteFile("package.json", []byte("{}"), 0o644); err != nil {
				t.Fatalf("WriteFile error: %v", err)
			}

			if ok, _ := ws.Exists("gym/src/components/ui"); !ok {
				t.Error("parent does not see sub directory")
			}
			got, err := ws.ReadFile("gym/package.json")
			if err != nil || string(got) != "{}" {
				t.Errorf("parent ReadFile = %q, %v", got, err)
			}
		})
	}
}

func TestWorkspace_Escape(t *testing.T) {
	for name, ws := range workspaces(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range []string{"../x", "a/../../x", "/etc/passwd"} {
				if err := ws.WriteFile(p, nil, 0o644); !errors.Is(err, ErrOutsideWorkspace) {
					t.Errorf("WriteFile(%q) error = %v, want ErrOutsideWorkspace", p, err)
				}
			}
		})
	}
}

func TestDir_Permissions(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteFile(".husky/pre-commit", []byte("npx lint-staged\n"), 0o755); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	info, err := os.Stat(filepath.Join(d.Root(), ".husky", "pre-commit"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("perm = %o, want 755", info.Mode().Perm())
	}
	assertNoTempFiles(t, filepath.Join(d.Root(), ".husky"))
}

func TestWriteFileAtomic_Replace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(path, []byte("new"), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "new" {
		t.Errorf("content = %q, %v; want new", data, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Errorf("dir holds %d entries, want only package.json (temp file left behind)", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "x"), []byte("x"), 0o644)
	if err == nil {
		t.Error("WriteFileAtomic into missing dir succeeded")
	}
}

func TestMemory_Files(t *testing.T) {
	m := NewMemory()
	m.WriteFile("b.ts", nil, 0o644)
	m.WriteFile("app/a.ts", nil, 0o644)
	m.WriteFile("app/src/c.ts", nil, 0o644)

	if diff := cmp.Diff([]string{"app/a.ts", "app/src/c.ts", "b.ts"}, m.Files()); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}
	sub := m.Sub("app").(*Memory)
	if diff := cmp.Diff([]string{"a.ts", "src/c.ts"}, sub.Files()); diff != "" {
		t.Errorf("sub Files() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_CopiesData(t *testing.T) {
	m := NewMemory()
	data := []byte("abc")
	m.WriteFile("x", data, 0o644)
	data[0] = 'z'

	got, _ := m.ReadFile("x")
	if string(got) != "abc" {
		t.Errorf("stored data aliased caller slice: %q", got)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, _ := filepath.Glob(filepath.Join(dir, ".reacthub-tmp-*"))
	if len(matches) > 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
