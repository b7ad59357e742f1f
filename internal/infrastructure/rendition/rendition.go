// Package rendition готовит сжатую веб-версию размеченного бланка для чата и отчётов.
package rendition

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// captionHeight высота полосы с подписью над кадром.
const captionHeight = 20

// ErrEmptyImage пустой кадр.
var ErrEmptyImage = errors.New("empty image")

// Options параметры веб-версии.
type Options struct {
	MaxWidth int // ширина, до которой уменьшается кадр; 0 отключает уменьшение
	Quality  int // качество JPEG 1..100
}

// DefaultOptions 800 px по ширине, JPEG q60.
func DefaultOptions() Options {
	return Options{MaxWidth: 800, Quality: 60}
}

// Renderer уменьшает кадр, добавляет подпись и кодирует в JPEG.
type Renderer struct {
	opts Options
}

// New создаёт Renderer; нулевые значения заменяются значениями по умолчанию.
func New(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.MaxWidth < 0 {
		opts.MaxWidth = def.MaxWidth
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	return &Renderer{opts: opts}
}

// Render возвращает JPEG; подпись пишется на тёмной полосе сверху, если не пустая.
func (r *Renderer) Render(img image.Image, caption string) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	out := img
	if r.opts.MaxWidth > 0 && img.Bounds().Dx() > r.opts.MaxWidth {
		out = imaging.Resize(img, r.opts.MaxWidth, 0, imaging.Lanczos)
	}
	if caption != "" {
		out = withCaption(out, caption)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(r.opts.Quality)); err != nil {
		return nil, fmt.Errorf("encode rendition: %w", err)
	}
	return buf.Bytes(), nil
}

// withCaption добавляет над кадром полосу с текстом.
func withCaption(img image.Image, text string) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy()+captionHeight, color.NRGBA{R: 32, G: 32, B: 32, A: 255})
	canvas = imaging.Paste(canvas, img, image.Pt(0, captionHeight))

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, captionHeight-6),
	}
	d.DrawString(text)
	return canvas
}

