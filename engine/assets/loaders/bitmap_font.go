package loaders

import (
	"fmt"
	"sort"

	"github.com/fzipp/bmfont"
)

type FontGlyph struct {
	Codepoint rune
	X, Y      uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type FontKerning struct {
	Codepoint0 rune
	Codepoint1 rune
	Amount     int16
}

type FontPage struct {
	ID   int8
	File string
}

// Font is a bitmap font atlas description. Glyphs are sorted by codepoint,
// kernings by their pair.
type Font struct {
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     []FontGlyph
	Kernings   []FontKerning
	Pages      []FontPage
}

// Glyph looks up the glyph of codepoint.
func (f *Font) Glyph(codepoint rune) (FontGlyph, bool) {
	i := sort.Search(len(f.Glyphs), func(i int) bool { return f.Glyphs[i].Codepoint >= codepoint })
	if i < len(f.Glyphs) && f.Glyphs[i].Codepoint == codepoint {
		return f.Glyphs[i], true
	}
	return FontGlyph{}, false
}

// Kerning is the advance adjustment between a and b, 0 if none.
func (f *Font) Kerning(a, b rune) int16 {
	for _, k := range f.Kernings {
		if k.Codepoint0 == a && k.Codepoint1 == b {
			return k.Amount
		}
	}
	return 0
}

// BitmapFontLoader loads AngelCode .fnt descriptors and their page sheets.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string) (any, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", path, err)
	}

	d := font.Descriptor
	out := &Font{
		Face:       d.Info.Face,
		Size:       uint32(d.Info.Size),
		LineHeight: int32(d.Common.LineHeight),
		Baseline:   int32(d.Common.Base),
		AtlasSizeX: int32(d.Common.ScaleW),
		AtlasSizeY: int32(d.Common.ScaleH),
		Glyphs:     make([]FontGlyph, 0, len(d.Chars)),
		Kernings:   make([]FontKerning, 0, len(d.Kerning)),
		Pages:      make([]FontPage, 0, len(d.Pages)),
	}

	for _, p := range d.Pages {
		out.Pages = append(out.Pages, FontPage{ID: int8(p.ID), File: p.File})
	}
	sort.Slice(out.Pages, func(i, j int) bool { return out.Pages[i].ID < out.Pages[j].ID })

	for _, g := range d.Chars {
		out.Glyphs = append(out.Glyphs, FontGlyph{
			Codepoint: g.ID,
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		})
	}
	sort.Slice(out.Glyphs, func(i, j int) bool { return out.Glyphs[i].Codepoint < out.Glyphs[j].Codepoint })

	for pair, k := range d.Kerning {
		out.Kernings = append(out.Kernings, FontKerning{
			Codepoint0: pair.First,
			Codepoint1: pair.Second,
			Amount:     int16(k.Amount),
		})
	}
	sort.Slice(out.Kernings, func(i, j int) bool {
		a, b := out.Kernings[i], out.Kernings[j]
		if a.Codepoint0 != b.Codepoint0 {
			return a.Codepoint0 < b.Codepoint0
		}
		return a.Codepoint1 < b.Codepoint1
	})

	return out, nil
}

func (fl *BitmapFontLoader) Unload(data any) error {
	font, ok := data.(*Font)
	if !ok {
		return fmt.Errorf("bitmap font loader cannot unload %T", data)
	}
	font.Glyphs = nil
	font.Kernings = nil
	font.Pages = nil
	return nil
}
