package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const blurHashSize = 64

var ErrUnsupportedImage = errors.New("upload a valid image; the file was either not an image or corrupted")

var imageFormats = map[string]struct {
	contentType string
	ext         string
}{
	"jpeg": {"image/jpeg", ".jpg"},
	"png":  {"image/png", ".png"},
	"gif":  {"image/gif", ".gif"},
	"webp": {"image/webp", ".webp"},
}

// Image describes a decoded upload.
type Image struct {
	ContentType string
	Ext         string
	Width       int
	Height      int
	BlurHash    string
}

// InspectImage decodes data as jpeg, png, gif or webp and computes its BlurHash.
func InspectImage(data []byte) (*Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	f, ok := imageFormats[format]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrUnsupportedImage
	}

	// 4x3 components keep the hash around 20-30 chars
	hash, err := blurhash.Encode(4, 3, shrink(img))
	if err != nil {
		return nil, fmt.Errorf("encode blurhash: %w", err)
	}

	return &Image{
		ContentType: f.contentType,
		Ext:         f.ext,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		BlurHash:    hash,
	}, nil
}

func shrink(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= blurHashSize && h <= blurHashSize {
		return img
	}

	dw, dh := blurHashSize, blurHashSize
	if w > h {
		dh = max(1, h*blurHashSize/w)
	} else {
		dw = max(1, w*blurHashSize/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
