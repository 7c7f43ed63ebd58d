// Package imaging turns uploaded pictures into square profile avatars.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// AvatarSize is the edge length of a stored avatar.
const AvatarSize = 256

// MaxUploadBytes is the largest accepted upload.
const MaxUploadBytes = 5 << 20

// JPEGQuality is the compression quality of stored avatars.
const JPEGQuality = 85

// ErrUnsupported is returned for uploads that are not a JPEG or PNG image.
var ErrUnsupported = errors.New("unsupported image format")

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Avatar is an encoded avatar image.
type Avatar struct {
	Data []byte
	MIME string
}

// Process sniffs the upload's format, crops it to its centred square,
// shrinks it to AvatarSize and re-encodes it as JPEG. Images smaller than
// AvatarSize are cropped but not enlarged.
func Process(r io.Reader) (*Avatar, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxUploadBytes)
	}

	// Client headers are not trusted.
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s (only JPEG and PNG accepted)", ErrUnsupported, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = square(img, AvatarSize)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return &Avatar{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// square crops img to the largest centred square and scales it down to at
// most size pixels per edge with Catmull-Rom interpolation.
func square(img image.Image, size int) image.Image {
	b := img.Bounds()
	edge := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-edge)/2
	y0 := b.Min.Y + (b.Dy()-edge)/2
	crop := image.Rect(x0, y0, x0+edge, y0+edge)

	out := min(edge, size)
	if out < 1 {
		out = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, out, out))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
