// Package debugui draws Dear ImGui debug windows over the blockfall window.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay runs a Dear ImGui frame inside ebiten's Update and draws it over
// the game in Draw. It satisfies the window front end's Overlay interface.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	items   []func()
}

// NewOverlay creates the ImGui backend and the window it renders into.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{backend: backend}
}

// Add registers a render function called once per frame.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, render)
}

func (o *Overlay) Update() {
	o.backend.BeginFrame()
	for _, render := range o.items {
		render()
	}
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether ImGui has keyboard focus, in which case
// game keys should be ignored.
func (o *Overlay) WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
