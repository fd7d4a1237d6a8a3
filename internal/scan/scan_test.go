package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/simon/sessionizer/internal/config"
)

// mkdirs builds a directory tree under a fresh temp root.
func mkdirs(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, r)
	}
	return out
}

func TestEvaluateDepthBounds(t *testing.T) {
	root := mkdirs(t, "a", "b/nested", "b/nested/deep", "c")

	tests := []struct {
		name     string
		min, max int
		want     []string
	}{
		{"only direct children", 1, 1, []string{"a", "b", "c"}},
		{"root included at min 0", 0, 1, []string{".", "a", "b", "c"}},
		{"two levels", 1, 2, []string{"a", "b", "b/nested", "c"}},
		{"second level only", 2, 2, []string{"b/nested"}},
		{"root only", 0, 0, []string{"."}},
		{"below everything", 4, 4, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(config.Rule{Path: root, MinDepth: tt.min, MaxDepth: tt.max})
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if rels := rel(t, root, got); !reflect.DeepEqual(rels, tt.want) && !(len(rels) == 0 && len(tt.want) == 0) {
				t.Errorf("Evaluate() = %v, want %v", rels, tt.want)
			}
		})
	}
}

func TestEvaluateMissingRoot(t *testing.T) {
	got, err := Evaluate(config.Rule{
		Path:     filepath.Join(t.TempDir(), "does-not-exist"),
		MinDepth: 1,
		MaxDepth: 1,
	})
	if err != nil {
		t.Fatalf("missing root must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("missing root must yield no paths, got %v", got)
	}
}

func TestEvaluateRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Evaluate(config.Rule{Path: file, MinDepth: 0, MaxDepth: 1})
	if err != nil {
		t.Fatalf("non-directory root must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("non-directory root must yield no paths, got %v", got)
	}
}

func TestEvaluateFilterMatchesWholeName(t *testing.T) {
	root := mkdirs(t, "proj", "proj-api", "other")

	got, err := Evaluate(config.Rule{Path: root, MinDepth: 1, MaxDepth: 1, Grep: "proj"})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rels := rel(t, root, got); !reflect.DeepEqual(rels, []string{"proj"}) {
		t.Errorf("filter must match the full name: got %v", rels)
	}
}

func TestEvaluateIgnoresFiles(t *testing.T) {
	root := mkdirs(t, "a")
	if err := os.WriteFile(filepath.Join(root, "b.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Evaluate(config.Rule{Path: root, MinDepth: 1, MaxDepth: 1})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rels := rel(t, root, got); !reflect.DeepEqual(rels, []string{"a"}) {
		t.Errorf("files must be ignored: got %v", rels)
	}
}

func TestEvaluateDoesNotFollowSymlinks(t *testing.T) {
	root := mkdirs(t, "real")
	outside := mkdirs(t, "target/inner")
	if err := os.Symlink(filepath.Join(outside, "target"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := Evaluate(config.Rule{Path: root, MinDepth: 1, MaxDepth: 2})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rels := rel(t, root, got); !reflect.DeepEqual(rels, []string{"real"}) {
		t.Errorf("symlinked directories must not be reported or followed: got %v", rels)
	}
}

func TestEvaluateSkipsUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	root := mkdirs(t, "blocked/hidden", "open/child")
	blocked := filepath.Join(root, "blocked")
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(blocked, 0o755) })

	got, err := Evaluate(config.Rule{Path: root, MinDepth: 1, MaxDepth: 2})
	if err != nil {
		t.Fatalf("an unreadable subtree must not abort the scan: %v", err)
	}
	// The unreadable directory itself is still listed; its contents are
	// skipped and the walk continues with the siblings.
	want := []string{"blocked", "open", "open/child"}
	if rels := rel(t, root, got); !reflect.DeepEqual(rels, want) {
		t.Errorf("Evaluate() = %v, want %v", rels, want)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	root := mkdirs(t, "z", "m", "a", "m/inner")
	rule := config.Rule{Path: root, MinDepth: 1, MaxDepth: 2}

	first, err := Evaluate(rule)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Evaluate(rule)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs differ: %v vs %v", first, second)
	}
	if rels := rel(t, root, first); !reflect.DeepEqual(rels, []string{"a", "m", "m/inner", "z"}) {
		t.Errorf("order must be lexical: %v", rels)
	}
}

func TestAllConcatenatesInRuleOrder(t *testing.T) {
	rootA := mkdirs(t, "x")
	rootB := mkdirs(t, "y")

	got, err := All([]config.Rule{
		{Path: rootB, MinDepth: 1, MaxDepth: 1},
		{Path: rootA, MinDepth: 1, MaxDepth: 1},
	})
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	want := []string{filepath.Join(rootB, "y"), filepath.Join(rootA, "x")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}
