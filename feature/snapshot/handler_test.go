package snapshot_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/manifest/manifesttest"
	"manifest-resolver/core/storage"
	"manifest-resolver/core/storage/mocks"
	"manifest-resolver/feature/snapshot"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, f *manifesttest.Fixture, client storage.Client) (*fiber.App, *manifest.Store) {
	store := manifest.NewStore(nil)
	reloader := manifest.NewReloader(store, f.Config(), f.DatabaseConfig(), manifest.Options{}, zap.NewNop())
	t.Cleanup(func() {
		if snap, err := store.Snapshot(); err == nil {
			_ = snap.Close()
		}
	})

	app := fiber.New()
	feature := snapshot.NewFeature(store, reloader, client, "manifests", f.Config(), "en", zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, store
}

func decode[T any](t *testing.T, r io.Reader) T {
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHandleStatus(t *testing.T) {
	f := manifesttest.New(t)
	f.Put(manifest.TableInventoryItem, 1, manifest.ItemDefinition{Hash: 1})
	f.SetVersion("v1")
	app, _ := setupTestApp(t, f, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/snapshot", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status := decode[snapshot.Status](t, resp.Body)
	assert.False(t, status.Loaded)
	assert.Empty(t, status.Tables)

	resp, err = app.Test(httptest.NewRequest("POST", "/snapshot/reload", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decode[snapshot.ReloadResult](t, resp.Body)
	assert.Equal(t, "v1", result.Version)
	assert.Equal(t, "", result.Previous)
	assert.False(t, result.Pulled)

	resp, err = app.Test(httptest.NewRequest("GET", "/snapshot", nil))
	require.NoError(t, err)
	status = decode[snapshot.Status](t, resp.Body)
	assert.True(t, status.Loaded)
	assert.Equal(t, "v1", status.Version)
	assert.NotNil(t, status.LoadedAt)
	assert.True(t, status.Matched)
	assert.Equal(t, int64(1), status.Tables["DestinyInventoryItemDefinition"].Rows)
}

func TestHandleReload(t *testing.T) {
	t.Run("missing snapshot", func(t *testing.T) {
		f := manifesttest.New(t)
		cfg := f.Config()
		cfg.Dir = t.TempDir()

		store := manifest.NewStore(nil)
		reloader := manifest.NewReloader(store, cfg, f.DatabaseConfig(), manifest.Options{}, nil)
		app := fiber.New()
		require.NoError(t, snapshot.NewFeature(store, reloader, nil, "manifests", cfg, "en", zap.NewNop()).Load(app))

		resp, err := app.Test(httptest.NewRequest("POST", "/snapshot/reload", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("pull without storage", func(t *testing.T) {
		app, _ := setupTestApp(t, manifesttest.New(t), nil)
		resp, err := app.Test(httptest.NewRequest("POST", "/snapshot/reload?pull=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("pull up to date", func(t *testing.T) {
		f := manifesttest.New(t)
		f.SetVersion("v3")
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "manifests").Return(true, nil)
		client.On("GetObject", mock.Anything, "manifests", "en/manifest_version.txt", mock.Anything).
			Return(io.NopCloser(strings.NewReader("v3")), nil)

		app, store := setupTestApp(t, f, client)
		resp, err := app.Test(httptest.NewRequest("POST", "/snapshot/reload?pull=true", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		result := decode[snapshot.ReloadResult](t, resp.Body)
		assert.False(t, result.Pulled)
		assert.Equal(t, "v3", result.Version)
		assert.Equal(t, "v3", store.Version())
		client.AssertExpectations(t)
	})
}

func TestHandlePublished(t *testing.T) {
	t.Run("without storage", func(t *testing.T) {
		app, _ := setupTestApp(t, manifesttest.New(t), nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/snapshot/published", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("listed", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "manifests").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "en/destiny_manifest.sqlite"}
		ch <- minio.ObjectInfo{Key: "en/manifest_version.txt"}
		close(ch)
		client.On("ListObjects", mock.Anything, "manifests", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		app, _ := setupTestApp(t, manifesttest.New(t), client)
		resp, err := app.Test(httptest.NewRequest("GET", "/snapshot/published", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "en", body["locale"])
		assert.Empty(t, body["missing"])
	})
}
