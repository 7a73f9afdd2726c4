package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// themeFile is the on-disk layout of a theme manifest file:
//
//	themes:
//	  - name: solarized
//	    tokens: { code.keyword: sol-kw }
//	    variants:
//	      dark: { tokens: { code.keyword: sol-kw-dark } }
type themeFile struct {
	Themes []themeEntry `yaml:"themes"`
}

type themeEntry struct {
	Name     string                  `yaml:"name"`
	Version  string                  `yaml:"version"`
	Tokens   map[string]string       `yaml:"tokens"`
	Variants map[string]variantEntry `yaml:"variants"`
}

type variantEntry struct {
	Tokens map[string]string `yaml:"tokens"`
}

// manifestSelector serves go-theme selections from manifests loaded from a
// file. Names are matched case-insensitively.
type manifestSelector struct {
	manifests map[string]*theme.Manifest
}

func loadThemes(path string) (*manifestSelector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read theme file %s", path)
	}
	var file themeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrapf(err, "decode theme file %s", path)
	}

	selector := &manifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, entry := range file.Themes {
		key := strings.ToLower(strings.TrimSpace(entry.Name))
		if key == "" {
			return nil, errors.Newf("theme file %s: theme name is required", path)
		}
		if _, exists := selector.manifests[key]; exists {
			return nil, errors.Newf("theme file %s: duplicate theme %q", path, entry.Name)
		}
		manifest := &theme.Manifest{
			Name:     entry.Name,
			Version:  entry.Version,
			Tokens:   entry.Tokens,
			Variants: make(map[string]theme.Variant, len(entry.Variants)),
		}
		for name, variant := range entry.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: variant.Tokens}
		}
		selector.manifests[key] = manifest
	}
	return selector, nil
}

// Select implements the orchestrator's theme selector. An empty variant
// selects the base tokens only.
func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := s.manifests[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Newf("theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, errors.Newf("theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}
