package display

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// ToImage converts a frame buffer into an image. 8-bit formats become
// *image.RGBA and 16-bit formats *image.RGBA64; formats without alpha are
// opaque.
func ToImage(frame Frame) (image.Image, error) {
	info := frame.Info
	if err := info.Format.Validate(); err != nil {
		return nil, err
	}
	if len(frame.Pixels) != info.ByteSize() {
		return nil, fmt.Errorf("frame has %d bytes, expected %d for %dx%d %s",
			len(frame.Pixels), info.ByteSize(), info.Width, info.Height, info.Format)
	}

	width, height := int(info.Width), int(info.Height)
	bounds := image.Rect(0, 0, width, height)
	src := frame.Pixels
	channels := int(info.Format.Channels)

	if info.Format.BytesPerChannel == 1 {
		img := image.NewRGBA(bounds)
		dst := img.Pix
		for i, j := 0, 0; i < len(src); i, j = i+channels, j+4 {
			dst[j+0] = src[i+0]
			dst[j+1] = src[i+1]
			dst[j+2] = src[i+2]
			if channels == 4 {
				dst[j+3] = src[i+3]
			} else {
				dst[j+3] = 0xFF
			}
		}
		return img, nil
	}

	// RGBA64 stores big-endian 16-bit channels, same as the frame buffer
	img := image.NewRGBA64(bounds)
	dst := img.Pix
	step := channels * 2
	for i, j := 0, 0; i < len(src); i, j = i+step, j+8 {
		copy(dst[j:j+6], src[i:i+6])
		if channels == 4 {
			dst[j+6] = src[i+6]
			dst[j+7] = src[i+7]
		} else {
			dst[j+6] = 0xFF
			dst[j+7] = 0xFF
		}
	}
	return img, nil
}

// Scale enlarges an image by an integer factor with nearest-neighbour
// sampling so individual rendered pixels stay crisp.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.NearestNeighbor)
}

// EncodePNG converts a frame to PNG bytes, optionally scaled
func EncodePNG(frame Frame, scale int) ([]byte, error) {
	img, err := ToImage(frame)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Scale(img, scale), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// AverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func AverageLuminance(img image.Image) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}

	total := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xFFFF + 0.7152*float64(g)/0xFFFF + 0.0722*float64(bl)/0xFFFF
		}
	}
	return total / float64(b.Dx()*b.Dy())
}

// frameInfo is a shorthand used by sinks when logging
func frameInfo(frame Frame) string {
	return fmt.Sprintf("%dx%d %s (%d bytes)", frame.Info.Width, frame.Info.Height, frame.Info.Format, len(frame.Pixels))
}
