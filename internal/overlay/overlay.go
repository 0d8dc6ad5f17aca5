// Package overlay draws per-frame results onto camera frames and shows them
// in a preview window.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hand"
)

// Drawing style.
var (
	textColor    = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	cursorColor  = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	landmarkDot  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	boneColor    = color.RGBA{R: 200, G: 200, B: 0, A: 0}
	textOrigin   = image.Point{X: 10, Y: 30}
	textScale    = 0.8
	textWeight   = 2
	cursorRadius = 10
)

// bones lists landmark pairs joined when the skeleton is drawn.
var bones = [][2]int{
	{hand.Wrist, hand.ThumbCMC}, {hand.ThumbCMC, hand.ThumbMCP}, {hand.ThumbMCP, hand.ThumbIP}, {hand.ThumbIP, hand.ThumbTip},
	{hand.Wrist, hand.IndexMCP}, {hand.IndexMCP, hand.IndexPIP}, {hand.IndexPIP, hand.IndexDIP}, {hand.IndexDIP, hand.IndexTip},
	{hand.IndexMCP, hand.MiddleMCP}, {hand.MiddleMCP, hand.MiddlePIP}, {hand.MiddlePIP, hand.MiddleDIP}, {hand.MiddleDIP, hand.MiddleTip},
	{hand.MiddleMCP, hand.RingMCP}, {hand.RingMCP, hand.RingPIP}, {hand.RingPIP, hand.RingDIP}, {hand.RingDIP, hand.RingTip},
	{hand.RingMCP, hand.PinkyMCP}, {hand.Wrist, hand.PinkyMCP}, {hand.PinkyMCP, hand.PinkyPIP}, {hand.PinkyPIP, hand.PinkyDIP}, {hand.PinkyDIP, hand.PinkyTip},
}

// Renderer annotates frames with the composed signal.
type Renderer struct {
	// Skeleton enables drawing the detected landmarks.
	Skeleton bool
}

// NewRenderer creates a renderer.
func NewRenderer(skeleton bool) *Renderer {
	return &Renderer{Skeleton: skeleton}
}

// Draw annotates img in place. When ok is false no hand was detected and the
// frame is left untouched.
func (r *Renderer) Draw(img *gocv.Mat, snap *hand.Snapshot, f hand.Frame, ok bool) {
	if img == nil || img.Empty() || !ok {
		return
	}

	if r.Skeleton && snap != nil {
		drawSkeleton(img, snap)
	}

	if c := f.Signal.Cursor; c != nil {
		start := toPoint(c.Start.X, c.Start.Y)
		aim := toPoint(c.Aim.X, c.Aim.Y)
		gocv.Line(img, start, aim, cursorColor, 2)
		gocv.Circle(img, aim, cursorRadius, cursorColor, -1)
	}

	gocv.PutText(img, f.Signal.Text(), textOrigin, gocv.FontHersheySimplex, textScale, textColor, textWeight)
}

func drawSkeleton(img *gocv.Mat, snap *hand.Snapshot) {
	w, h := float64(img.Cols()), float64(img.Rows())
	at := func(i int) image.Point {
		return toPoint(snap[i].X*w, snap[i].Y*h)
	}
	for _, b := range bones {
		gocv.Line(img, at(b[0]), at(b[1]), boneColor, 1)
	}
	for i := range snap {
		gocv.Circle(img, at(i), 3, landmarkDot, -1)
	}
}

func toPoint(x, y float64) image.Point {
	return image.Point{X: int(x + 0.5), Y: int(y + 0.5)}
}

// EncodeJPEG compresses img for the MJPEG stream.
func EncodeJPEG(img *gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *img)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory freed by Close.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
