//go:build !ebiten

package ui

import "seat-ca/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Hovered always reports no cell in headless builds.
func (o *Overlay) Hovered() int { return -1 }

// Targets is empty in headless builds.
func (o *Overlay) Targets() []int { return nil }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
