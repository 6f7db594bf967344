package imaging

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestNormalizeKeepsSmallImagesUntouched(t *testing.T) {
	data := encodePNG(t, 100, 50)

	out, err := Normalize(data, "image/png")
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestNormalizeDownscalesWideImages(t *testing.T) {
	data := encodePNG(t, 3200, 400)

	out, err := Normalize(data, "image/png")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestNormalizeRejectsNonImagePayload(t *testing.T) {
	_, err := Normalize([]byte("definitely not pixels"), "image/png")
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestNormalizeRejectsUnknownContentType(t *testing.T) {
	_, err := Normalize(encodePNG(t, 10, 10), "image/gif")
	assert.ErrorIs(t, err, ErrNotAnImage)
}
