package scene

import (
	"github.com/philipparndt/protedit/pkg/geometry"
)

// ConnectionID identifies a connection within one scene
type ConnectionID string

// Connection is a curved link between two elements. Samples are derived from
// the endpoint anchors and Bow; they are recomputed whenever an endpoint
// moves and are never exported.
type Connection struct {
	ID       ConnectionID
	A, B     ElementID
	Bow      float64
	Samples  []geometry.Vector3
	Revision int // incremented on every recompute

	dirty bool
}

// Touches reports whether id is one of the connection's endpoints
func (c *Connection) Touches(id ElementID) bool {
	return c.A == id || c.B == id
}
