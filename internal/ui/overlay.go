//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"seat-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type sightlineProvider interface {
	Sightlines(index int) []int
}

// Overlay draws the sightlines of the seat under the cursor on top of the grid.
type Overlay struct {
	sim      core.Sim
	scale    int
	show     bool
	hovered  int
	targets  []int
	pixel    *ebiten.Image
	lineTint color.RGBA
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1), show: true, hovered: -1}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.lineTint = color.RGBA{R: 250, G: 220, B: 90, A: 200}
	return o
}

// Update toggles the overlay with V and tracks the hovered cell.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.show = !o.show
	}
	o.hovered = -1
	o.targets = o.targets[:0]
	if !o.show {
		return
	}
	provider, ok := o.sim.(sightlineProvider)
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := o.sim.Size()
	x, y := mx/o.scale, my/o.scale
	if mx < 0 || my < 0 || x >= size.W || y >= size.H {
		return
	}
	o.hovered = y*size.W + x
	o.targets = append(o.targets, provider.Sightlines(o.hovered)...)
}

// Hovered returns the index of the cell under the cursor, or -1.
func (o *Overlay) Hovered() int { return o.hovered }

// Targets returns the seats the hovered cell takes into account.
func (o *Overlay) Targets() []int { return o.targets }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.hovered < 0 {
		return
	}
	w := o.sim.Size().W
	cx, cy := o.centre(o.hovered, w)
	thickness := math.Max(1, float64(o.scale)/4)
	for _, t := range o.targets {
		tx, ty := o.centre(t, w)
		o.drawLine(screen, cx, cy, tx, ty, thickness, o.lineTint)
	}
}

func (o *Overlay) centre(index, w int) (float64, float64) {
	half := float64(o.scale) / 2
	return float64((index%w)*o.scale) + half, float64((index/w)*o.scale) + half
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
