// Package macro implements named key-chord macros: a YAML-defined sequence
// of key chords replayed through a virtual_keyboard.
package macro

import (
	"fmt"
	"os"
	"time"

	"github.com/wlvirt/virtual-input/virtual_keyboard"
	"gopkg.in/yaml.v3"
)

// Step is one chord in a macro: a set of keys pressed together, held for
// HoldMS, then released.
type Step struct {
	Keys   []uint32 `yaml:"keys"`
	HoldMS int      `yaml:"hold_ms"`
}

// Set is a named, ordered list of steps.
type Set struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// File is the top-level YAML document: a named collection of macro sets.
type File struct {
	Macros []Set `yaml:"macros"`
}

// Load parses path as a macro file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("macro: failed to read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("macro: failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// Find returns the named set, or an error if no set has that name.
func (f *File) Find(name string) (*Set, error) {
	for i := range f.Macros {
		if f.Macros[i].Name == name {
			return &f.Macros[i], nil
		}
	}
	return nil, fmt.Errorf("macro: no set named %q", name)
}

// PlayOn replays every step of s on kb in order, pressing all keys in a
// chord before releasing any of them.
func (s *Set) PlayOn(kb *virtual_keyboard.VirtualKeyboard) error {
	for _, step := range s.Steps {
		for _, key := range step.Keys {
			if err := kb.KeyPress(key); err != nil {
				return fmt.Errorf("macro: %s: press key %d: %w", s.Name, key, err)
			}
		}
		if step.HoldMS > 0 {
			time.Sleep(time.Duration(step.HoldMS) * time.Millisecond)
		}
		for i := len(step.Keys) - 1; i >= 0; i-- {
			if err := kb.KeyRelease(step.Keys[i]); err != nil {
				return fmt.Errorf("macro: %s: release key %d: %w", s.Name, step.Keys[i], err)
			}
		}
	}
	return nil
}
