package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"mosquito/internal/swat"
)

var (
	colorHUD     = color.RGBA{0x22, 0x2B, 0x33, 0xFF}
	colorField   = color.RGBA{0xF2, 0xD7, 0xB6, 0xFF} // skin
	colorBody    = color.RGBA{0x33, 0x33, 0x33, 0xFF}
	colorWing    = color.RGBA{0xDD, 0xEE, 0xFF, 0xA0}
	colorLanded  = color.RGBA{0x11, 0x11, 0x11, 0xFF}
	colorBitten  = color.RGBA{0xC0, 0x22, 0x22, 0xFF}
	colorSplat   = color.RGBA{0x8B, 0x1A, 0x1A, 0xC0}
	colorSwatter = color.RGBA{0x2B, 0x6C, 0xB0, 0xFF}
	colorBanner  = color.RGBA{0, 0, 0, 0xCC}
)

const glyphW = 7 // basicfont.Face7x13 advance

func drawMosquito(screen *ebiten.Image, m swat.Mosquito, offsetY float64) {
	cx, cy := m.Center()
	cy += offsetY
	r := m.Size / 2

	switch m.State {
	case swat.Flying:
		fillCircle(screen, cx-r*0.45, cy-r*0.35, r*0.45, colorWing)
		fillCircle(screen, cx+r*0.45, cy-r*0.35, r*0.45, colorWing)
		fillCircle(screen, cx, cy, r*0.3, colorBody)
	case swat.Landed:
		line(screen, cx-r*0.8, cy+r*0.6, cx+r*0.8, cy-r*0.6, 1, colorLanded)
		line(screen, cx-r*0.8, cy-r*0.6, cx+r*0.8, cy+r*0.6, 1, colorLanded)
		fillCircle(screen, cx, cy, r*0.35, colorLanded)
		line(screen, cx, cy, cx, cy+r*0.9, 2, colorLanded)
	case swat.Bitten:
		fillCircle(screen, cx, cy, r*0.35, colorBitten)
		strokeCircle(screen, cx, cy, r*0.7, 2, colorBitten)
	case swat.Smashed:
		fillCircle(screen, cx, cy, r*0.6, colorSplat)
		fillCircle(screen, cx+r*0.5, cy-r*0.4, r*0.2, colorSplat)
		fillCircle(screen, cx-r*0.6, cy+r*0.3, r*0.15, colorSplat)
	}
}

func drawSwatter(screen *ebiten.Image, x, y float64) {
	const head = 36
	line(screen, x, y+head/2, x, y+head/2+40, 4, colorSwatter)
	vector.StrokeRect(screen, float32(x-head/2), float32(y-head/2), head, head, 3, colorSwatter, false)
	for i := 1; i < 4; i++ {
		off := float64(i) * head / 4
		line(screen, x-head/2+off, y-head/2, x-head/2+off, y+head/2, 1, colorSwatter)
		line(screen, x-head/2, y-head/2+off, x+head/2, y-head/2+off, 1, colorSwatter)
	}
}

func drawBanner(screen *ebiten.Image, msg string, w, h float64) {
	tw := float64(textWidth(msg))
	bw, bh := tw+60, 54.0
	x, y := (w-bw)/2, (h-bh)/2
	fill(screen, x, y, bw, bh, colorBanner)
	text.Draw(screen, msg, basicfont.Face7x13, int(x+30), int(y+bh/2+4), color.White)
}

func textWidth(s string) int {
	return len([]rune(s)) * glyphW
}

// --- drawing helpers ---

func fill(img *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func fillCircle(img *ebiten.Image, cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(img, float32(cx), float32(cy), float32(r), c, true)
}

func strokeCircle(img *ebiten.Image, cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(img, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

func line(img *ebiten.Image, x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}
