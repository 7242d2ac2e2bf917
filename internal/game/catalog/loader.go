package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

const (
	itemsDir   = "items"
	kitsFile   = "kits.yaml"
	colorsFile = "colors.yaml"
)

// LoadRegistry reads a catalog directory laid out as:
//
//	items/*.yaml  lists of ItemDef
//	kits.yaml     list of KitDef
//	colors.yaml   map of color type name to a list of ColorDef
//
// Files are read and decoded concurrently; definitions are registered in id
// order so duplicate detection is deterministic.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns a fully populated Registry or the first encountered error.
func LoadRegistry(dir string) (*Registry, error) {
	entries, err := os.ReadDir(filepath.Join(dir, itemsDir))
	if err != nil {
		return nil, fmt.Errorf("catalog: LoadRegistry: cannot read items directory: %w", err)
	}
	var itemFiles []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		itemFiles = append(itemFiles, filepath.Join(dir, itemsDir, e.Name()))
	}
	sort.Strings(itemFiles)

	itemSets := make([][]*ItemDef, len(itemFiles))
	var kits []*KitDef
	var colors map[string][]*ColorDef

	var g errgroup.Group
	for i, path := range itemFiles {
		g.Go(func() error {
			return decodeFile(path, &itemSets[i])
		})
	}
	g.Go(func() error {
		return decodeOptional(filepath.Join(dir, kitsFile), &kits)
	})
	g.Go(func() error {
		return decodeOptional(filepath.Join(dir, colorsFile), &colors)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog: LoadRegistry: %w", err)
	}

	var items []*ItemDef
	for _, set := range itemSets {
		items = append(items, set...)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	reg := NewRegistry()
	for _, d := range items {
		if err := reg.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	for _, k := range kits {
		if err := reg.RegisterKit(k); err != nil {
			return nil, err
		}
	}
	typeNames := make([]string, 0, len(colors))
	for name := range colors {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		t, ok := appearance.ParseColorType(name)
		if !ok {
			return nil, fmt.Errorf("catalog: LoadRegistry: unknown color type %q", name)
		}
		for _, c := range colors[name] {
			if err := reg.RegisterColor(t, c); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cannot parse file %q: %w", path, err)
	}
	return nil
}

// decodeOptional behaves like decodeFile but treats a missing file as empty.
func decodeOptional(path string, out any) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return decodeFile(path, out)
}
