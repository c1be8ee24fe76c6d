// Package settings persists the calibrated palette in a JSON file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cubescan/internal/models"
)

const paletteKey = "cube_palette"

// DefaultPath resolves to cubescan/settings.json under the user config
// directory ($XDG_CONFIG_HOME on Linux), or the working directory when no
// config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(dir, "cubescan", "settings.json")
}

// Store reads and writes a single settings file. Keys it does not manage
// are preserved on save.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// LoadPalette returns the stored palette. ok is false when the file or key
// is missing or when not all six colors are present.
func (s *Store) LoadPalette() (models.Palette, bool, error) {
	var p models.Palette

	doc, err := s.read()
	if err != nil {
		return p, false, err
	}
	raw, found := doc[paletteKey]
	if !found {
		return p, false, nil
	}

	var entries map[string][3]int
	if err := json.Unmarshal(raw, &entries); err != nil {
		return p, false, fmt.Errorf("decode %s in %s: %w", paletteKey, s.path, err)
	}

	var seen [models.CubeColorCount]bool
	for name, triple := range entries {
		cubeColor, err := models.ParseCubeColor(name)
		if err != nil {
			return p, false, fmt.Errorf("decode %s in %s: %w", paletteKey, s.path, err)
		}
		c, err := models.ColorFromTriple(triple)
		if err != nil {
			return p, false, fmt.Errorf("decode %s %s: %w", paletteKey, name, err)
		}
		p[cubeColor] = c
		seen[cubeColor] = true
	}
	for _, ok := range seen {
		if !ok {
			return models.Palette{}, false, nil
		}
	}
	return p, true, nil
}

// SavePalette writes the palette, creating the parent directory if needed
func (s *Store) SavePalette(p models.Palette) error {
	doc, err := s.read()
	if err != nil {
		return err
	}

	entries := make(map[string][3]int, models.CubeColorCount)
	for _, name := range models.AllCubeColors() {
		entries[name.String()] = p.Get(name).Triple()
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", paletteKey, err)
	}
	doc[paletteKey] = raw

	return s.write(doc)
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *Store) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings %s: %w", s.path, err)
	}
	return nil
}
