package label

import (
	"image/color"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette hands out vibrant, visually distinct colors for annotation classes.
// Each palette owns its used-color set, so independent workspaces never fight
// over a shared pool.
type Palette struct {
	rng  *rand.Rand
	used map[string]bool
}

// NewPalette creates a palette seeded for reproducible color sequences.
func NewPalette(seed int64) *Palette {
	return &Palette{
		rng:  rand.New(rand.NewSource(seed)),
		used: make(map[string]bool),
	}
}

// Next returns a vibrant color not handed out before. Colors are generated in
// HSV with high saturation and value so they stay readable over imagery. After
// 10 failed attempts to find an unused color the used set is reset, matching
// the behavior of a reasonably small class count.
func (p *Palette) Next() color.RGBA {
	for attempt := 0; attempt < 10; attempt++ {
		c := p.vibrant()
		if !p.used[c.Hex()] {
			p.used[c.Hex()] = true
			return toRGBA(c)
		}
	}

	p.used = make(map[string]bool)
	c := p.vibrant()
	p.used[c.Hex()] = true
	return toRGBA(c)
}

// NextN returns count distinct colors.
func (p *Palette) NextN(count int) []color.RGBA {
	colors := make([]color.RGBA, count)
	for i := range colors {
		colors[i] = p.Next()
	}
	return colors
}

func (p *Palette) vibrant() colorful.Color {
	h := p.rng.Float64() * 360
	s := 0.7 + p.rng.Float64()*0.3
	v := 0.7 + p.rng.Float64()*0.3
	return colorful.Hsv(h, s, v)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
