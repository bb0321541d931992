package publish

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"langusta/core/middleware/auth"
	"langusta/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	t.Helper()
	app := fiber.New()
	client := new(mocks.Client)
	feature := NewFeature(client, bucket, object, 0, zap.NewNop(), auth.New(auth.Config{ApiKey: "secret"}))
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, client
}

func TestHandleFetch(t *testing.T) {
	t.Run("Document", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(mocks.Body(published), nil)

		req := httptest.NewRequest("GET", "/localizations?platform=an&version=4", nil)
		req.Header.Set("Accept-Language", "cs-CZ")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "5", resp.Header.Get(VersionHeader))
		assert.Equal(t, "cs", resp.Header.Get("Content-Language"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		langs := languagesOf(t, body)
		assert.Contains(t, langs["cs"], "an")
		assert.NotContains(t, langs["cs"], "ios")
		assert.NotContains(t, langs, "en")
	})

	t.Run("UpToDate", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(mocks.Body(published), nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/localizations?version=5", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("NotPublished", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(nil, mocks.NoSuchKey)

		resp, err := app.Test(httptest.NewRequest("GET", "/localizations", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("StorageError", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(nil, assert.AnError)

		resp, err := app.Test(httptest.NewRequest("GET", "/localizations", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandlePublish(t *testing.T) {
	put := func(app *fiber.App, body, contentType, query string, key string) int {
		req := httptest.NewRequest("PUT", "/localizations"+query, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		if key != "" {
			req.Header.Set(auth.Header, key)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("Unauthorized", func(t *testing.T) {
		app, client := setupTestApp(t)
		assert.Equal(t, fiber.StatusUnauthorized, put(app, published, "application/json", "", ""))
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("JSON", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(nil, mocks.NoSuchKey)
		client.On("PutObject", mock.Anything, bucket, object, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		assert.Equal(t, fiber.StatusCreated, put(app, published, "application/json", "", "secret"))
	})

	t.Run("YAML", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(nil, mocks.NoSuchKey)
		client.On("PutObject", mock.Anything, bucket, object, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				var doc map[string]any
				require.NoError(t, json.NewDecoder(args.Get(3).(io.Reader)).Decode(&doc))
				assert.Equal(t, "7", doc["version"])
			}).
			Return(minio.UploadInfo{}, nil)

		doc := "version: \"7\"\nlocalizations:\n  cs:\n    _:\n      k1: Ahoj\n"
		assert.Equal(t, fiber.StatusCreated, put(app, doc, "application/yaml", "", "secret"))
	})

	t.Run("Invalid", func(t *testing.T) {
		app, _ := setupTestApp(t)
		assert.Equal(t, fiber.StatusBadRequest, put(app, `{"version":1}`, "application/json", "", "secret"))
	})

	t.Run("Conflict", func(t *testing.T) {
		app, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, bucket, object, mock.Anything).Return(mocks.Body(published), nil)

		assert.Equal(t, fiber.StatusConflict, put(app, `{"version":"5","localizations":{}}`, "application/json", "", "secret"))
	})
}

func TestHandleHistoryAndPrune(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("ListObjects", mock.Anything, bucket, mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Key: "archive/1.json"},
		minio.ObjectInfo{Key: "archive/2.json"},
	)).Once()

	resp, err := app.Test(httptest.NewRequest("GET", "/localizations/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var revisions []Revision
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&revisions))
	require.Len(t, revisions, 2)
	assert.Equal(t, "2", revisions[0].Version)

	req := httptest.NewRequest("DELETE", "/localizations/history", nil)
	req.Header.Set(auth.Header, "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	client.On("ListObjects", mock.Anything, bucket, mock.Anything).Return(mocks.Objects(
		minio.ObjectInfo{Key: "archive/1.json"},
		minio.ObjectInfo{Key: "archive/2.json"},
	)).Once()
	client.On("RemoveObject", mock.Anything, bucket, "archive/1.json", mock.Anything).Return(nil)

	req = httptest.NewRequest("DELETE", "/localizations/history?keep=1", nil)
	req.Header.Set(auth.Header, "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"archive/1.json"}, body["removed"])
}
