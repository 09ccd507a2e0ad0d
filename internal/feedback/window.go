package feedback

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/signdata/internal/detector"
)

// WindowTitle is the HighGUI window name.
const WindowTitle = "Sign Language Data Collection"

var (
	labelColor     = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	counterColor   = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	countdownColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	capturingColor = color.RGBA{R: 255, G: 128, B: 0, A: 0}
	warningColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	boneColor      = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	jointColor     = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

// Window draws the overlay and landmark skeleton onto the frame and shows it
// in a HighGUI window. Pressing q in the window calls the quit callback.
type Window struct {
	window *gocv.Window
	onQuit func()
}

// NewWindow opens a window. onQuit may be nil.
func NewWindow(onQuit func()) *Window {
	return &Window{
		window: gocv.NewWindow(WindowTitle),
		onQuit: onQuit,
	}
}

// Render draws on frame in place and displays it.
func (w *Window) Render(frame *gocv.Mat, o Overlay) error {
	if frame == nil || frame.Empty() {
		return nil
	}

	for _, hand := range o.Hands {
		drawSkeleton(frame, hand)
	}

	y := 30
	for _, line := range Lines(o) {
		scale, c := 1.0, labelColor
		switch line.Kind {
		case KindCounter:
			scale, c = 0.8, counterColor
		case KindCountdown:
			c = countdownColor
		case KindCapturing:
			c = capturingColor
		case KindWarning:
			scale, c = 0.7, warningColor
		}
		gocv.PutText(frame, line.Text, image.Pt(10, y), gocv.FontHersheySimplex, scale, c, 2)
		y += 40
	}

	w.window.IMShow(*frame)
	if key := w.window.WaitKey(1); key&0xFF == 'q' && w.onQuit != nil {
		w.onQuit()
	}
	return nil
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.window.Close()
}

// drawSkeleton draws bones and joints for one hand. Landmarks are normalized,
// so they are scaled by the frame size.
func drawSkeleton(frame *gocv.Mat, hand detector.HandLandmarks) {
	cols, rows := frame.Cols(), frame.Rows()
	pixel := func(i int) image.Point {
		p := hand.Points[i]
		return image.Pt(int(p.X*float64(cols)), int(p.Y*float64(rows)))
	}

	for _, c := range detector.HandConnections {
		gocv.Line(frame, pixel(c.From), pixel(c.To), boneColor, 2)
	}
	for i := range hand.Points {
		gocv.Circle(frame, pixel(i), 4, jointColor, -1)
	}
}
