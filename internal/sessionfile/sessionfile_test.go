package sessionfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSessionFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write session file: %v", err)
	}
	return path
}

func TestLoad_FullSpec(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "work.edn", `
{:name "work"
 :root "/tmp/project"
 :windows [{:name "edit"
            :panes [{:setup ["vim" :Enter]}
                    {:dir "logs"}]}
           {:name "shell"
            :panes [{}]}]}
`)

	spec, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "work" {
		t.Errorf("Name: got %q, want %q", spec.Name, "work")
	}
	if spec.Root != "/tmp/project" {
		t.Errorf("Root: got %q, want %q", spec.Root, "/tmp/project")
	}
	if len(spec.Windows) != 2 {
		t.Fatalf("Windows: got %d, want 2", len(spec.Windows))
	}
	if len(spec.Windows[0].Panes) != 2 {
		t.Fatalf("Panes: got %d, want 2", len(spec.Windows[0].Panes))
	}
	if len(spec.Windows[0].Panes[0].Setup) != 2 {
		t.Errorf("Setup: got %d actions, want 2", len(spec.Windows[0].Panes[0].Setup))
	}
	if spec.Path != path {
		t.Errorf("Path: got %q, want %q", spec.Path, path)
	}
}

func TestLoad_NameDefaultsToFileName(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "scratch.edn", `{:windows []}`)

	spec, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "scratch" {
		t.Errorf("Name: got %q, want %q", spec.Name, "scratch")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionFile(t, dir, "bad.edn", `{:name`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDiscover_SortsAndSkipsNonEDN(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "beta.edn", `{}`)
	writeSessionFile(t, dir, "alpha.edn", `{}`)
	writeSessionFile(t, dir, "notes.txt", `ignore me`)

	specs, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	var names []string
	for _, s := range specs {
		if s.Path == filepath.Join(dir, "alpha.edn") || s.Path == filepath.Join(dir, "beta.edn") {
			names = append(names, s.Name)
		}
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("got %v, want [alpha beta]", names)
	}
}

func TestDiscover_EarlierDirShadows(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeSessionFile(t, first, "dev.edn", `{:name "dev" :root "/first"}`)
	writeSessionFile(t, second, "dev.edn", `{:name "dev" :root "/second"}`)

	specs, err := Discover([]string{first, second})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	for _, s := range specs {
		if s.Name == "dev" {
			if s.Root != "/first" {
				t.Errorf("Root: got %q, want the shadowing file's %q", s.Root, "/first")
			}
			return
		}
	}
	t.Fatal("dev session not discovered")
}

func TestFind_Missing(t *testing.T) {
	if _, err := Find("no-such-session", []string{t.TempDir()}); err == nil {
		t.Fatal("expected error for unknown session name")
	}
}

func TestPaneDir(t *testing.T) {
	spec := Spec{Root: "/srv/app"}
	tests := []struct {
		dir  string
		want string
	}{
		{"", "/srv/app"},
		{"logs", filepath.Join("/srv/app", "logs")},
		{"/var/log", "/var/log"},
	}
	for _, tt := range tests {
		if got := spec.PaneDir(PaneSpec{Dir: tt.dir}); got != tt.want {
			t.Errorf("PaneDir(%q): got %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestPaneDir_NoRoot(t *testing.T) {
	spec := Spec{}
	if got := spec.PaneDir(PaneSpec{Dir: "work"}); got != "work" {
		t.Errorf("got %q, want %q", got, "work")
	}
}
