package saveserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/scene"
)

func newTestApp(t *testing.T) (*fiber.App, *Store) {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "scenes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return NewApp(store, Options{Quiet: true}), store
}

func sceneDocument(t *testing.T) []byte {
	t.Helper()
	sc := scene.New(scene.WithSeed(5))
	_, err := sc.Add(scene.KindHelix, scene.Params{Length: 5})
	require.NoError(t, err)
	_, err = sc.Add(scene.KindSheet, scene.Params{Length: 5, Width: 2})
	require.NoError(t, err)
	doc, err := export.Serialize(sc.Elements())
	require.NoError(t, err)
	return doc
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, string, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(data)
}

var ackPattern = regexp.MustCompile(`^Scene saved \((\d+) elements\) as ([0-9a-f-]{36})$`)

func TestSaveStoresDocumentVerbatim(t *testing.T) {
	app, store := newTestApp(t)
	doc := sceneDocument(t)

	status, contentType, ack := do(t, app, http.MethodPost, "/save", string(doc))
	require.Equal(t, http.StatusOK, status, ack)
	assert.Contains(t, contentType, "text/plain")

	m := ackPattern.FindStringSubmatch(ack)
	require.NotNil(t, m, ack)
	assert.Equal(t, "2", m[1])

	saved, err := store.Get(context.Background(), m[2])
	require.NoError(t, err)
	assert.Equal(t, doc, saved.Body)
	assert.Equal(t, 2, saved.Elements)

	status, contentType, body := do(t, app, http.MethodGet, "/scenes/"+m[2], "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, contentType, "application/json")
	assert.Equal(t, string(doc), body)
}

func TestSaveEmptyScene(t *testing.T) {
	app, store := newTestApp(t)
	status, _, ack := do(t, app, http.MethodPost, "/save", "[]")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, ack, "(0 elements)")

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSaveRejectsInvalidDocuments(t *testing.T) {
	app, store := newTestApp(t)
	for _, body := range []string{"", "{}", `[{"type":"coil"}]`, "not json"} {
		status, _, _ := do(t, app, http.MethodPost, "/save", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
	}
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetUnknownScene(t *testing.T) {
	app, _ := newTestApp(t)

	status, _, _ := do(t, app, http.MethodGet, "/scenes/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = do(t, app, http.MethodGet, "/scenes/00000000-0000-0000-0000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	status, _, body := do(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"alive"}`, body)
}
