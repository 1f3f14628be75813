// Package imaging reads the metadata of uploaded design images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyImage       = errors.New("empty image")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// Info describes an image without decoding its pixels
type Info struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Mode     string `json:"mode"`
	MimeType string `json:"-"`
}

// Inspect sniffs the MIME type of data and reads its dimensions, format
// tag (PNG, JPEG, GIF, WEBP, BMP) and colour mode tag.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyImage
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Info{}, fmt.Errorf("%w: detected %s", ErrUnsupportedImage, mtype.String())
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	return Info{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   strings.ToUpper(format),
		Mode:     Mode(cfg.ColorModel),
		MimeType: mtype.String(),
	}, nil
}

// Mode names a colour model the way image tools usually tag it
func Mode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}

	switch m {
	case color.RGBAModel, color.RGBA64Model, color.YCbCrModel:
		return "RGB"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return "RGBA"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	case color.CMYKModel:
		return "CMYK"
	default:
		return "unknown"
	}
}
