package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Weapon_Perk ")
	require.NoError(t, err)
	assert.Equal(t, CategoryWeaponPerk, c)

	_, err = ParseCategory("exotic")
	assert.ErrorContains(t, err, "unknown category")

	list, err := ParseCategories("trait, intrinsic,,origin_trait,frame")
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryTrait, CategoryIntrinsic, CategoryOriginTrait, CategoryFrame}, list)

	_, err = ParseCategories("trait,bogus")
	assert.Error(t, err)
}

func TestCategoryText(t *testing.T) {
	text, err := CategoryShader.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "shader", string(text))
	assert.Equal(t, "category(99)", Category(99).String())
}

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()

	tests := []struct {
		label string
		want  Category
	}{
		{"Weapon Perk", CategoryWeaponPerk},
		{"weapon perk", CategoryWeaponPerk},
		{"  Weapon   Perk ", CategoryWeaponPerk},
		{"Shader", CategoryShader},
		{"シェーダー", CategoryShader},
		{"特性", CategoryTrait},
		{"内在効果", CategoryIntrinsic},
		{"オリジン特性", CategoryOriginTrait},
		{"フレーム", CategoryFrame},
		{"ﾌﾚｰﾑ", CategoryFrame}, // half-width katakana
		{"Hand Cannon", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.Classify(tt.label))
		})
	}

	var nilTax *Taxonomy
	assert.Equal(t, CategoryUnknown, nilTax.Classify("Shader"))
}

func TestClassifyExact(t *testing.T) {
	tax := DefaultTaxonomy()
	tax.Add("Arme Perk", CategoryWeaponPerk)

	tests := []struct {
		label string
		want  Category
	}{
		{"Weapon Perk", CategoryWeaponPerk},
		{"Arme Perk", CategoryWeaponPerk},
		{"オリジン特性", CategoryOriginTrait},
		{"weapon perk", CategoryUnknown},
		{"Weapon Perk ", CategoryUnknown},
		{"Ｗｅａｐｏｎ Ｐｅｒｋ", CategoryUnknown},
		{"ﾌﾚｰﾑ", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.ClassifyExact(tt.label))
		})
	}

	var nilTax *Taxonomy
	assert.Equal(t, CategoryUnknown, nilTax.ClassifyExact("Weapon Perk"))
}

func TestLoadTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `categories:
  shader: ["Sombreado"]
  weapon_perk: ["武器パーク", "Enhanced Trait"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)
	assert.Equal(t, CategoryShader, tax.Classify("sombreado"))
	assert.Equal(t, CategoryWeaponPerk, tax.Classify("武器パーク"))
	assert.Equal(t, CategoryWeaponPerk, tax.Classify("Enhanced Trait"))
	// Defaults are kept.
	assert.Equal(t, CategoryShader, tax.Classify("Shader"))

	t.Run("empty path", func(t *testing.T) {
		tax, err := LoadTaxonomy("")
		require.NoError(t, err)
		assert.Equal(t, CategoryTrait, tax.Classify("Trait"))
	})

	t.Run("unknown category", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("categories:\n  armor: [\"Helmet\"]\n"), 0o644))
		_, err := LoadTaxonomy(bad)
		assert.ErrorContains(t, err, "unknown category")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "failed to read taxonomy file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("categories: [\n"), 0o644))
		_, err := LoadTaxonomy(bad)
		assert.ErrorContains(t, err, "failed to parse taxonomy file")
	})
}
