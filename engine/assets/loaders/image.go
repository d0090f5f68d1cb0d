package loaders

import (
	"fmt"
	"image"
	"os"

	// stdlib and x/image decoders registered with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// Image holds decoded pixels as tightly packed 8-bit RGBA rows.
type Image struct {
	Format       string
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []uint8
}

type ImageLoader struct {
	// FlipY stores the rows bottom up.
	FlipY bool
}

func (il *ImageLoader) Load(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	if il.FlipY {
		flipRows(rgba.Pix, rgba.Stride, bounds.Dy())
	}

	return &Image{
		Format:       format,
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		ChannelCount: 4,
		Pixels:       rgba.Pix,
	}, nil
}

func (il *ImageLoader) Unload(data any) error {
	img, ok := data.(*Image)
	if !ok {
		return fmt.Errorf("image loader cannot unload %T", data)
	}
	img.Pixels = nil
	return nil
}

func flipRows(pix []uint8, stride, rows int) {
	tmp := make([]uint8, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
