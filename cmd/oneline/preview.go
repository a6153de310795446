package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/penplot/oneline"
	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

// minPenWidth keeps slow, thin pen segments visible in the preview.
const minPenWidth = 0.5

// renderPreview draws the pen trajectory fitted into a square image of the
// given size, on white, with a margin of a twentieth of the size.
func renderPreview(samples []oneline.Sample, bounds oneline.Rect, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if len(samples) == 0 || bounds.IsEmpty() {
		return img
	}

	margin := float64(size) / 20
	dst := oneline.Rect{X0: margin, Y0: margin, X1: float64(size) - margin, Y1: float64(size) - margin}
	aff := oneline.FitRect(bounds, dst)
	scale := aff.N0

	r := vector.NewRasterizer(size, size)
	prev := samples[0].Pos.Translate(samples[0].Vel.Negate())
	for _, s := range samples {
		p0, p1 := prev.Transform(aff), s.Pos.Transform(aff)
		prev = s.Pos
		d := p1.Sub(p0)
		if d.Hypot2() == 0 {
			continue
		}
		n := oneline.Vec(-d.Y, d.X).Normalize().Mul(max(s.Width*scale, minPenWidth) / 2)
		quad(r, p0.Translate(n), p1.Translate(n), p1.Translate(n.Negate()), p0.Translate(n.Negate()))
	}
	r.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})
	return img
}

func quad(r *vector.Rasterizer, a, b, c, d oneline.Point) {
	r.MoveTo(float32(a.X), float32(a.Y))
	r.LineTo(float32(b.X), float32(b.Y))
	r.LineTo(float32(c.X), float32(c.Y))
	r.LineTo(float32(d.X), float32(d.Y))
	r.ClosePath()
}

func savePreview(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create preview")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to encode preview")
	}
	return errors.Wrap(f.Close(), "failed to write preview")
}
