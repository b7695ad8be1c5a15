package viewer

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"seam-carver/internal/carve"
	"seam-carver/internal/logger"
)

// SeamView displays the carver's image at its native size and asks the carver
// to narrow it whenever the widget is laid out narrower than the image.
type SeamView struct {
	widget.BaseWidget

	carver *Carver
	logger logger.Logger
	image  *canvas.Image
	status *widget.Label

	mu      sync.Mutex
	busy    bool
	pending int
}

func NewSeamView(carver *Carver, log logger.Logger) *SeamView {
	if log == nil {
		log = logger.Nop{}
	}
	img := carver.Image()

	v := &SeamView{
		carver: carver,
		logger: log,
		image:  canvas.NewImageFromImage(img.ToNRGBA()),
		status: widget.NewLabel(""),
	}
	v.image.FillMode = canvas.ImageFillOriginal
	v.image.ScaleMode = canvas.ImageScalePixels
	v.setStatus(img, 0)
	v.ExtendBaseWidget(v)
	return v
}

// Content wraps the view with its status line.
func (v *SeamView) Content() fyne.CanvasObject {
	return container.NewBorder(nil, v.status, nil, nil, v)
}

func (v *SeamView) CreateRenderer() fyne.WidgetRenderer {
	return &seamViewRenderer{view: v}
}

// requestWidth records the latest target and starts a carve if none is
// running. Targets arriving mid-carve collapse into one follow-up run.
func (v *SeamView) requestWidth(width int) {
	v.mu.Lock()
	v.pending = width
	if v.busy {
		v.mu.Unlock()
		return
	}
	v.busy = true
	v.mu.Unlock()

	go v.carveLoop()
}

func (v *SeamView) carveLoop() {
	for {
		v.mu.Lock()
		target := v.pending
		v.mu.Unlock()

		img, removed, err := v.carver.ShrinkTo(target)
		if removed > 0 || err != nil {
			total := v.carver.Removed()
			nrgba := img.ToNRGBA()
			fyne.Do(func() {
				v.image.Image = nrgba
				v.image.Refresh()
				if err != nil {
					v.status.SetText(fmt.Sprintf("carving failed: %v", err))
					return
				}
				v.setStatus(img, total)
			})
		}

		v.mu.Lock()
		if v.pending == target || err != nil {
			v.busy = false
			v.mu.Unlock()
			return
		}
		v.mu.Unlock()
	}
}

func (v *SeamView) setStatus(img *carve.Image, removed int) {
	v.status.SetText(fmt.Sprintf("%dx%d, %d seams removed", img.Width, img.Height, removed))
}

type seamViewRenderer struct {
	view *SeamView
}

func (r *seamViewRenderer) Layout(size fyne.Size) {
	r.view.image.Resize(size)
	r.view.image.Move(fyne.NewPos(0, 0))

	if w := int(size.Width); w > 0 && w < r.view.carver.Width() {
		r.view.requestWidth(w)
	}
}

// MinSize lets the window shrink to a single column.
func (r *seamViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(1, float32(r.view.carver.Height()))
}

func (r *seamViewRenderer) Refresh() {
	r.view.image.Refresh()
}

func (r *seamViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.image}
}

func (r *seamViewRenderer) Destroy() {}
