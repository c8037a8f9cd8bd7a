package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkWritesDocument(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`[]`)

	ack, err := FileSink{Path: dir}.Deliver(context.Background(), doc)
	require.NoError(t, err)
	assert.Contains(t, ack, DefaultFileName)

	written, err := os.ReadFile(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, doc, written)
}

func TestFileSinkCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	_, err := FileSink{Path: path}.Deliver(context.Background(), []byte(`[]`))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFileSinkHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileSink{Path: t.TempDir()}.Deliver(ctx, []byte(`[]`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSinkPostsDocument(t *testing.T) {
	var gotBody []byte
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/save" {
			http.NotFound(w, r)
			return
		}
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "Scene saved\n")
	}))
	defer srv.Close()

	ack, err := NewHTTPSink(srv.URL+"/").Deliver(context.Background(), []byte(`[{"type":"alpha-helix"}]`))
	require.NoError(t, err)
	assert.Equal(t, "Scene saved", ack)
	assert.Contains(t, gotType, MIMEType)
	assert.JSONEq(t, `[{"type":"alpha-helix"}]`, string(gotBody))
}

func TestHTTPSinkReportsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSink(srv.URL).Deliver(context.Background(), []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPSinkReportsUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSink(url).Deliver(context.Background(), []byte(`[]`))
	assert.Error(t, err)
}
