package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/protedit/pkg/geometry"
)

func TestAnnotateDistance(t *testing.T) {
	got := Annotate([]geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3.8, 0, 0),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "3.800 Å", got[0].Text)
	assert.Equal(t, geometry.NewVector3(1.9, 0, 0), got[0].Anchor)
}

func TestAnnotateAngle(t *testing.T) {
	got := Annotate([]geometry.Vector3{
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(0, 1, 0),
	})
	require.Len(t, got, 3)
	assert.Equal(t, "90.0°", got[2].Text)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), got[2].Anchor)
}

func TestAnnotateSinglePoint(t *testing.T) {
	assert.Empty(t, Annotate([]geometry.Vector3{geometry.NewVector3(1, 2, 3)}))
}
