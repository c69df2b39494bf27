// Package sessionfile discovers and loads on-disk session definitions.
//
// A session file is an EDN map describing a session to create: its name,
// root directory, windows, panes, and an optional setup action payload
// per pane that is executed through the engine once the pane exists.
//
// Search order:
//  1. .pane-pilot/sessions/ in the current directory
//  2. ~/.config/pane-pilot/sessions/
//  3. any extra directories from the config file
//
// Files in earlier directories shadow same-named files in later ones.
package sessionfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"olympos.io/encoding/edn"
)

// PaneSpec describes one pane of a window.
type PaneSpec struct {
	// Dir is the pane's working directory, relative to the session root
	// unless absolute.
	Dir string `edn:"dir"`
	// Setup is an action sequence executed in the pane after creation.
	Setup []any `edn:"setup"`
}

// WindowSpec describes one window of a session.
type WindowSpec struct {
	Name  string     `edn:"name"`
	Panes []PaneSpec `edn:"panes"`
}

// Spec is a parsed session definition.
type Spec struct {
	// Name is the session name. Defaults to the file's base name.
	Name string `edn:"name"`
	// Root is the session's working directory.
	Root string `edn:"root"`
	// Windows lists the windows to create. An empty list still creates
	// the session with its single default window.
	Windows []WindowSpec `edn:"windows"`

	// Path is the file this spec was loaded from (not part of the file).
	Path string `edn:"-"`
}

// Dirs returns the session-file search path, existing or not.
func Dirs(extra []string) []string {
	dirs := []string{filepath.Join(".pane-pilot", "sessions")}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "pane-pilot", "sessions"))
	}
	return append(dirs, extra...)
}

// Discover loads every .edn session file on the search path.
func Discover(extra []string) ([]Spec, error) {
	seen := make(map[string]bool)
	var specs []Spec
	for _, dir := range Dirs(extra) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // absent directories are not an error
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".edn") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			spec, err := Load(path)
			if err != nil {
				return nil, err
			}
			if seen[spec.Name] {
				continue
			}
			seen[spec.Name] = true
			specs = append(specs, spec)
		}
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs, nil
}

// Load parses a single session file.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read session file: %w", err)
	}
	var spec Spec
	if err := edn.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("parse session file %s: %w", path, err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), ".edn")
	}
	spec.Path = path
	return spec, nil
}

// Find returns the named session spec from the search path.
func Find(name string, extra []string) (Spec, error) {
	specs, err := Discover(extra)
	if err != nil {
		return Spec{}, err
	}
	for _, spec := range specs {
		if spec.Name == name {
			return spec, nil
		}
	}
	return Spec{}, fmt.Errorf("no session file named %q on the search path", name)
}

// PaneDir resolves a pane's working directory against the session root.
func (s Spec) PaneDir(p PaneSpec) string {
	if p.Dir == "" {
		return s.Root
	}
	if filepath.IsAbs(p.Dir) || s.Root == "" {
		return p.Dir
	}
	return filepath.Join(s.Root, p.Dir)
}
