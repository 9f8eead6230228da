package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/snapshot"
)

// statusPanel is a small always-on-top diagnostics panel toggled with F9.
// It uses colored nine-slices and the built-in basic font so no theme assets
// need to be loaded.
type statusPanel struct {
	ui *ebitenui.UI

	cameraLine  *widget.Text
	opticsLine  *widget.Text
	sessionLine *widget.Text
	entityLine  *widget.Text
}

func newStatusPanel() *statusPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewText(
		widget.TextOpts.Text("overlens", &face, white),
	)

	line := func() *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, white))
	}
	p := &statusPanel{
		cameraLine:  line(),
		opticsLine:  line(),
		sessionLine: line(),
		entityLine:  line(),
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 14, Right: 14}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(p.cameraLine)
	panel.AddChild(p.opticsLine)
	panel.AddChild(p.sessionLine)
	panel.AddChild(p.entityLine)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	return p
}

func (p *statusPanel) refresh(provider *camera.Provider, source snapshot.Source) {
	state := provider.State()

	if provider.Initialized() {
		p.cameraLine.Label = fmt.Sprintf("camera: fov %.1f  aspect %.3f", state.FOV, state.AspectRatio)
	} else {
		p.cameraLine.Label = "camera: searching"
	}
	if state.IsAiming {
		p.opticsLine.Label = "optics: aiming"
	} else {
		p.opticsLine.Label = "optics: hip"
	}
	if source.Active() {
		p.sessionLine.Label = "session: active"
	} else {
		p.sessionLine.Label = "session: inactive"
	}
	p.entityLine.Label = fmt.Sprintf("players %d  loot %d  exits %d",
		len(source.Players()), len(source.Loot()), len(source.Exits()))
}
