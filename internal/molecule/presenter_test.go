package molecule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeBackend struct {
	*render.Store
	upserts int
}

func (b *storeBackend) Upsert(p render.Primitive) {
	b.upserts++
	b.Store.Upsert(p)
}

func (b *storeBackend) HitTest(x, y float64) (string, geometry.Vector3, bool) {
	return "", geometry.Vector3{}, false
}

func (b *storeBackend) Render() {}

func TestPresenterDrawsCartoonSegments(t *testing.T) {
	v := loadView(t)
	b := &storeBackend{Store: render.NewStore()}
	p := NewPresenter(b)
	p.Sync(v)

	// four alpha carbons give three segments; nothing else is visible
	assert.Equal(t, []string{"cartoon:2", "cartoon:6", "cartoon:10"}, b.IDs())

	seg, ok := b.Get("cartoon:2")
	require.True(t, ok)
	assert.Equal(t, "#0000ff", seg.Color.Hex())
	assert.True(t, seg.Pickable)
}

func TestPresenterFollowsSelection(t *testing.T) {
	v := loadView(t)
	b := &storeBackend{Store: render.NewStore()}
	p := NewPresenter(b)
	p.Sync(v)

	require.NoError(t, v.Toggle(6))
	p.Sync(v)
	ids := b.IDs()
	assert.Contains(t, ids, "atom:6")
	assert.NotContains(t, ids, "cartoon:6", "segment starting at a stick atom is dropped")
	assert.NotContains(t, ids, "cartoon:2")

	atom, _ := b.Get("atom:6")
	assert.Equal(t, SelectedStyle.Color.Hex(), atom.Color.Hex())

	count := b.upserts
	p.Sync(v)
	assert.Equal(t, count, b.upserts, "unchanged view is not re-sent")
}

func TestPresenterDrawsSticksWithBonds(t *testing.T) {
	v := loadView(t)
	v.SetStyle(All(), Style{Rep: Stick})
	b := &storeBackend{Store: render.NewStore()}
	NewPresenter(b).Sync(v)

	ids := b.IDs()
	assert.Contains(t, ids, "bond:1-2")
	assert.Contains(t, ids, "atom:18")
	assert.Len(t, ids, 17+15)
}

func TestSerialForPrimitive(t *testing.T) {
	serial, ok := SerialForPrimitive(CartoonPrimitiveID(10))
	assert.True(t, ok)
	assert.Equal(t, 10, serial)

	serial, ok = SerialForPrimitive(AtomPrimitiveID(3))
	assert.True(t, ok)
	assert.Equal(t, 3, serial)

	_, ok = SerialForPrimitive("bond:1-2")
	assert.False(t, ok)
}

func TestLoadLocalAndRemote(t *testing.T) {
	path := "../../pkg/pdb/testdata/mini.pdb"
	s, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 17, s.AtomCount())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ".pdb") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	res := <-LoadAsync(context.Background(), srv.URL+"/mini.pdb")
	require.NoError(t, res.Err)
	assert.Equal(t, "1ABC", res.Structure.ID)

	_, err = Load(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestPresenterRedrawsReplacedView(t *testing.T) {
	first := loadView(t)
	b := &storeBackend{Store: render.NewStore()}
	p := NewPresenter(b)
	p.Sync(first)
	before := b.Bounds().Center()

	moved := *first.Structure()
	moved.Atoms = slices.Clone(moved.Atoms)
	for i := range moved.Atoms {
		moved.Atoms[i].Position.X += 100
	}
	second := NewView(&moved)
	require.Equal(t, first.Revision(), second.Revision())

	p.Sync(second)
	after := b.Bounds().Center()
	assert.InDelta(t, before.X+100, after.X, 1e-6, "replaced view is drawn")
	assert.InDelta(t, before.Y, after.Y, 1e-6)
}
