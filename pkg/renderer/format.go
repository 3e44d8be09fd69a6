package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// ErrUnsupportedFormat is returned for pixel layouts the frame renderer cannot write
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// PixelFormat describes the channel layout of a pixel buffer
type PixelFormat struct {
	Channels        uint8 // 3 (RGB) or 4 (RGBA)
	BytesPerChannel uint8 // 1 or 2, multi-byte channels are big-endian
}

var (
	RGB8   = PixelFormat{Channels: 3, BytesPerChannel: 1}
	RGBA8  = PixelFormat{Channels: 4, BytesPerChannel: 1}
	RGB16  = PixelFormat{Channels: 3, BytesPerChannel: 2}
	RGBA16 = PixelFormat{Channels: 4, BytesPerChannel: 2}
)

var formatNames = map[string]PixelFormat{
	"rgb8":   RGB8,
	"rgba8":  RGBA8,
	"rgb16":  RGB16,
	"rgba16": RGBA16,
}

// ParsePixelFormat converts a name such as "rgb8" into a PixelFormat
func ParsePixelFormat(name string) (PixelFormat, error) {
	format, ok := formatNames[strings.ToLower(name)]
	if !ok {
		return PixelFormat{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return format, nil
}

// String returns the short name of the format
func (f PixelFormat) String() string {
	for name, format := range formatNames {
		if format == f {
			return name
		}
	}
	return fmt.Sprintf("%dx%d", f.Channels, f.BytesPerChannel)
}

// BytesPerPixel returns the size of one pixel in bytes
func (f PixelFormat) BytesPerPixel() int {
	return int(f.Channels) * int(f.BytesPerChannel)
}

// HasAlpha reports whether the format carries an alpha channel
func (f PixelFormat) HasAlpha() bool {
	return f.Channels == 4
}

// Validate returns an error if the renderer cannot write this format
func (f PixelFormat) Validate() error {
	if f.Channels != 3 && f.Channels != 4 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	}
	if f.BytesPerChannel != 1 && f.BytesPerChannel != 2 {
		return fmt.Errorf("%w: %d bytes per channel", ErrUnsupportedFormat, f.BytesPerChannel)
	}
	return nil
}

// QuantizationFactor returns the largest value a channel can store,
// 2^(8*bytesPerChannel) - 1. This is 255 for 8-bit formats.
func QuantizationFactor(f PixelFormat) float64 {
	bytesPerChannel := f.BytesPerPixel() / int(f.Channels)
	return float64(uint64(1)<<(8*bytesPerChannel) - 1)
}

// Quantize clamps a channel value to [0,1] and scales it to an integer in
// [0, factor], truncating the fraction.
func Quantize(value, factor float64) uint64 {
	return uint64(core.Clamp01(value) * factor)
}

// ImageInfo describes the size and layout of a frame
type ImageInfo struct {
	Width  uint32
	Height uint32
	Format PixelFormat
}

// NewImageInfo creates image metadata and validates the format
func NewImageInfo(width, height uint32, format PixelFormat) (ImageInfo, error) {
	if width == 0 || height == 0 {
		return ImageInfo{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := format.Validate(); err != nil {
		return ImageInfo{}, err
	}
	return ImageInfo{Width: width, Height: height, Format: format}, nil
}

// ByteSize returns the exact length of a pixel buffer for this image
func (info ImageInfo) ByteSize() int {
	return int(info.Width) * int(info.Height) * info.Format.BytesPerPixel()
}

// Stride returns the number of bytes in one row
func (info ImageInfo) Stride() int {
	return int(info.Width) * info.Format.BytesPerPixel()
}
