package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// Raster is a software backend that draws flat-shaded, depth-tested
// triangles into an image. It is used for headless snapshots.
type Raster struct {
	*render.Store
	Camera     *render.Camera
	Background color.RGBA
	Label      string
	Edges      bool // outline feature edges on top of the shaded faces

	width, height int
	img           *image.RGBA
	zbuffer       []float64
}

// NewRaster creates a backend rendering width x height images
func NewRaster(width, height int) *Raster {
	return &Raster{
		Store:      render.NewStore(),
		Camera:     render.NewCamera(geometry.NewBoundingBox()),
		Background: color.RGBA{A: 255},
		width:      width,
		height:     height,
	}
}

// HitTest picks the nearest pickable primitive at an image position
func (r *Raster) HitTest(x, y float64) (string, geometry.Vector3, bool) {
	return render.HitTest(r.Store, r.Camera, x, y, float64(r.width), float64(r.height))
}

// FrameAll points the camera at everything in the store
func (r *Raster) FrameAll() {
	r.Camera.Frame(r.Bounds())
}

// Render draws the current primitives and the label
func (r *Raster) Render() {
	r.img = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.zbuffer = make([]float64, r.width*r.height)
	for i := range r.zbuffer {
		r.zbuffer[i] = math.Inf(1)
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.img.SetRGBA(x, y, r.Background)
		}
	}

	w, h := float64(r.width), float64(r.height)
	light := r.Camera.Forward().Mul(-1)
	r.Each(func(p render.Primitive, world geometry.Mesh) {
		base := p.Color.RGBA()
		for _, tri := range world.Triangles {
			// two-sided lighting keeps open tubes visible from inside
			shade := 0.35 + 0.65*math.Abs(tri.Normal.Dot(light))
			col := color.RGBA{
				R: uint8(float64(base.R) * shade),
				G: uint8(float64(base.G) * shade),
				B: uint8(float64(base.B) * shade),
				A: 255,
			}
			x1, y1, z1 := r.Camera.Project(tri.V1, w, h)
			x2, y2, z2 := r.Camera.Project(tri.V2, w, h)
			x3, y3, z3 := r.Camera.Project(tri.V3, w, h)
			fillTriangleWithDepth(r.img, r.zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, col)
		}
		if !r.Edges {
			return
		}
		edge := color.RGBA{R: base.R / 2, G: base.G / 2, B: base.B / 2, A: 255}
		for _, e := range world.Edges {
			ax, ay, _ := r.Camera.Project(e[0], w, h)
			bx, by, _ := r.Camera.Project(e[1], w, h)
			drawLine(r.img, int(ax), int(ay), int(bx), int(by), edge)
		}
	})

	if r.Label != "" {
		d := &font.Drawer{
			Dst:  r.img,
			Src:  image.NewUniform(color.White),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, 8+basicfont.Face7x13.Ascent),
		}
		d.DrawString(r.Label)
	}
}

// Image returns the last rendered frame
func (r *Raster) Image() *image.RGBA {
	if r.img == nil {
		r.Render()
	}
	return r.img
}

// WritePNG encodes the last rendered frame
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.Image()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, math.Ceil(y1))); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		var xs, zs [2]float64
		n := 0
		edge := func(ax, ay, az, bx, by, bz float64) {
			if n == 2 || ay == by || fy < ay || fy > by {
				return
			}
			t := (fy - ay) / (by - ay)
			xs[n] = ax + t*(bx-ax)
			zs[n] = az + t*(bz-az)
			n++
		}
		edge(x1, y1, z1, x2, y2, z2)
		edge(x2, y2, z2, x3, y3, z3)
		edge(x1, y1, z1, x3, y3, z3)
		if n < 2 {
			continue
		}

		xStart, xEnd, zStart, zEnd := xs[0], xs[1], zs[0], zs[1]
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		xStartInt := int(math.Max(0, math.Ceil(xStart)))
		xEndInt := int(math.Min(float64(bounds.Max.X-1), xEnd))

		for x := xStartInt; x <= xEndInt; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
