package item_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"manifest-resolver/core/manifest"
	"manifest-resolver/feature/item"
	"manifest-resolver/feature/item/models"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, store *manifest.Store) *fiber.App {
	feature, err := item.NewFeature(store, item.Config{PerkCategories: "weapon_perk"}, zap.NewNop(), nil)
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleGetItem(t *testing.T) {
	f := newFixture(t)
	app := newApp(t, f.Store(manifest.Options{}))

	// 3614169886 is -680797410 in the signed domain.
	req := httptest.NewRequest("GET", "/api/item/-680797410", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view models.Item
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, weaponHash, view.Hash)
	assert.Equal(t, "Fatebringer", view.DisplayProperties.Name)
	assert.Len(t, view.Perks, 1)
	assert.Len(t, view.RandomPerkColumns, 1)
	assert.Equal(t, "Stability", view.Stats.Stats["155624089"].DisplayProperties.Name)
}

func TestHandleGetItemByKey(t *testing.T) {
	f := newFixture(t)
	app := newApp(t, f.Store(manifest.Options{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/item/key/3614169886", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/item/key/-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetItemEmptyLists(t *testing.T) {
	f := newFixture(t)
	app := newApp(t, f.Store(manifest.Options{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/item/1015611457", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"perks":[]`)
	assert.Contains(t, string(body), `"randomPerkColumns":[]`)
	assert.NotContains(t, string(body), `"stats"`)
}

func TestHandleGetItemErrors(t *testing.T) {
	f := newFixture(t)
	loaded := f.Store(manifest.Options{})

	tests := []struct {
		name   string
		store  *manifest.Store
		path   string
		status int
	}{
		{"not a number", loaded, "/api/item/abc", fiber.StatusBadRequest},
		{"outside signed range", loaded, "/api/item/4294967295", fiber.StatusBadRequest},
		{"absent", loaded, "/api/item/12345", fiber.StatusNotFound},
		{"corrupt", loaded, "/api/item/1015611463", fiber.StatusInternalServerError},
		{"no snapshot", manifest.NewStore(nil), "/api/item/1", fiber.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(t, tt.store)
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			raw, _ := io.ReadAll(resp.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestFeature(t *testing.T) {
	feature, err := item.NewFeature(manifest.NewStore(nil), item.Config{}, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "item", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())
}
