package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	badgeGood = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	badgeFair = color.RGBA{R: 214, G: 158, B: 46, A: 255}
	badgePoor = color.RGBA{R: 207, G: 34, B: 46, A: 255}
	badgeRing = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// ScoreBadge draws a round badge of the given pixel size with the score in
// the middle and an arc proportional to score/100.
func ScoreBadge(score float64, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("badge size must be positive")
	}
	face, err := badgeFace(float64(size) * 0.28)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	s := float64(size)
	cx, cy := s/2, s/2
	lineW := s * 0.08
	r := s/2 - lineW

	dc := gg.NewContext(size, size)

	dc.SetColor(badgeRing)
	dc.SetLineWidth(lineW)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()

	clamped := math.Max(0, math.Min(100, score))
	if clamped > 0 {
		start := -math.Pi / 2
		end := start + 2*math.Pi*clamped/100
		dc.SetColor(badgeColor(clamped))
		dc.SetLineWidth(lineW)
		dc.DrawArc(cx, cy, r, start, end)
		dc.Stroke()
	}

	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(FormatScore(&score), cx, cy, 0.5, 0.35)

	return dc.Image(), nil
}

func badgeColor(score float64) color.Color {
	switch {
	case score >= 70:
		return badgeGood
	case score >= 40:
		return badgeFair
	default:
		return badgePoor
	}
}

func badgeFace(points float64) (font.Face, error) {
	parsed, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse badge font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
