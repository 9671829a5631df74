package manifest

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Category is the closed set of item kinds the resolver distinguishes.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryWeaponPerk
	CategoryTrait
	CategoryIntrinsic
	CategoryOriginTrait
	CategoryFrame
	CategoryShader
)

var categoryNames = map[Category]string{
	CategoryUnknown:     "unknown",
	CategoryWeaponPerk:  "weapon_perk",
	CategoryTrait:       "trait",
	CategoryIntrinsic:   "intrinsic",
	CategoryOriginTrait: "origin_trait",
	CategoryFrame:       "frame",
	CategoryShader:      "shader",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory returns the category with the given name (e.g. "weapon_perk").
func ParseCategory(name string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c, cn := range categoryNames {
		if cn == n {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown category: %q", name)
}

// ParseCategories parses a comma separated list of category names.
func ParseCategories(list string) ([]Category, error) {
	var out []Category
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseCategory(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// defaultLabels maps category labels as shipped in the en and ja snapshots.
var defaultLabels = map[Category][]string{
	CategoryWeaponPerk:  {"Weapon Perk"},
	CategoryTrait:       {"Trait", "特性"},
	CategoryIntrinsic:   {"Intrinsic", "内在効果"},
	CategoryOriginTrait: {"Origin Trait", "オリジン特性"},
	CategoryFrame:       {"Frame", "フレーム"},
	CategoryShader:      {"Shader", "シェーダー"},
}

// Taxonomy classifies item category labels into Categories.
// It must not be modified once a snapshot using it is serving.
type Taxonomy struct {
	labels map[string]Category
	exact  map[string]Category
}

// NewTaxonomy returns an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		labels: make(map[string]Category),
		exact:  make(map[string]Category),
	}
}

// DefaultTaxonomy returns a taxonomy with the built-in English and Japanese labels.
func DefaultTaxonomy() *Taxonomy {
	t := NewTaxonomy()
	for c, labels := range defaultLabels {
		for _, label := range labels {
			t.Add(label, c)
		}
	}
	return t
}

// Add maps label to c, replacing any previous mapping.
func (t *Taxonomy) Add(label string, c Category) {
	t.labels[normalizeLabel(label)] = c
	t.exact[label] = c
}

// Classify returns the category of label, or CategoryUnknown.
func (t *Taxonomy) Classify(label string) Category {
	if t == nil || label == "" {
		return CategoryUnknown
	}
	return t.labels[normalizeLabel(label)]
}

// ClassifyExact returns the category label was added under, without any
// normalization, or CategoryUnknown.
func (t *Taxonomy) ClassifyExact(label string) Category {
	if t == nil {
		return CategoryUnknown
	}
	return t.exact[label]
}

type taxonomyFile struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadTaxonomy reads extra labels from a YAML file on top of the defaults:
//
//	categories:
//	  shader: ["Shader", "Sombreado"]
//	  weapon_perk: ["Weapon Perk", "武器パーク"]
func LoadTaxonomy(path string) (*Taxonomy, error) {
	t := DefaultTaxonomy()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	for name, labels := range file.Categories {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			t.Add(label, c)
		}
	}
	return t, nil
}

// normalizeLabel folds width, case and spacing differences between locales.
func normalizeLabel(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}
