package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// AlertUI is a modal message box with an OK button. Alerts raised while one
// is open queue up behind it.
type AlertUI struct {
	alertQueue
	ui      *ebitenui.UI
	message *widget.Text
}

// alertQueue holds pending messages; the head is the one displayed.
type alertQueue struct {
	queue []string
}

func (q *alertQueue) push(msg string) {
	q.queue = append(q.queue, msg)
}

func (q *alertQueue) pop() {
	if len(q.queue) > 0 {
		q.queue = q.queue[1:]
	}
}

func (q *alertQueue) Open() bool {
	return len(q.queue) > 0
}

// Current returns the displayed message.
func (q *alertQueue) Current() string {
	if len(q.queue) == 0 {
		return ""
	}
	return q.queue[0]
}

func NewAlertUI(width, height float64) *AlertUI {
	a := &AlertUI{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	a.message = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	okBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("OK", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			a.Dismiss()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(width/3), int(height/5)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(a.message)
	panel.AddChild(okBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	a.ui = &ebitenui.UI{Container: root}
	return a
}

// Show queues msg behind any alert already open.
func (a *AlertUI) Show(msg string) {
	a.push(msg)
	a.message.Label = a.Current()
}

// Dismiss closes the displayed message.
func (a *AlertUI) Dismiss() {
	a.pop()
	a.message.Label = a.Current()
}

func (a *AlertUI) Update() {
	a.ui.Update()
}

func (a *AlertUI) Draw(screen *ebiten.Image) {
	a.ui.Draw(screen)
}
