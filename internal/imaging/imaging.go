package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// Uploads wider than this are downscaled before storing.
const maxWidth = 1600

var ErrNotAnImage = errors.New("payload is not a decodable image")

// Normalize decodes the payload according to its declared MIME type
// (rejecting payloads that only pretend to be images) and downscales
// anything wider than maxWidth. Re-encodes in the same format.
func Normalize(data []byte, contentType string) ([]byte, error) {
	img, err := decode(data, contentType)
	if err != nil {
		return nil, ErrNotAnImage
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return data, nil
	}

	h := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encode(dst, contentType)
}

func decode(data []byte, contentType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch contentType {
	case "image/jpeg", "image/jpg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	}
	return nil, ErrNotAnImage
}

func encode(img image.Image, contentType string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch contentType {
	case "image/jpeg", "image/jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: 85})
	default:
		return nil, ErrNotAnImage
	}

	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
