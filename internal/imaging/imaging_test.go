package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"userprofile/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"landscape", 800, 600, 128, 96},
		{"portrait", 50, 200, 32, 128},
		{"exact bound", 128, 128, 128, 128},
		{"smaller than bound", 100, 60, 100, 60},
		{"never upscale", 1, 1, 1, 1},
		{"square large", 1000, 1000, 128, 128},
		{"extreme ratio floors to one", 10000, 10, 128, 1},
		{"width lands exactly on bound", 491, 300, 128, 78},
		{"height lands exactly on bound", 600, 2999, 25, 128},
		{"narrow tall", 8, 2999, 1, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.w, tt.h, ThumbnailBound)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestFitLargerEdgeEqualsBound(t *testing.T) {
	// Whenever the source exceeds the box, the larger output edge must be
	// exactly the bound, never bound-1 from rounding.
	for w := 1; w <= 3000; w += 7 {
		for _, h := range []int{1, 9, 127, 128, 129, 500, 2999} {
			nw, nh := Fit(w, h, ThumbnailBound)
			if w <= ThumbnailBound && h <= ThumbnailBound {
				continue
			}
			larger := nw
			if nh > larger {
				larger = nh
			}
			require.Equal(t, ThumbnailBound, larger, "Fit(%d, %d)", w, h)
			require.GreaterOrEqual(t, nw, 1, "Fit(%d, %d)", w, h)
			require.GreaterOrEqual(t, nh, 1, "Fit(%d, %d)", w, h)
		}
	}
}

func TestFitPreservesAspectRatio(t *testing.T) {
	w, h := Fit(1920, 1080, ThumbnailBound)
	assert.Equal(t, 128, w)
	// 1080 * (128/1920) = 72
	assert.Equal(t, 72, h)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnailDownscales(t *testing.T) {
	res, err := Thumbnail(pngBytes(t, 800, 600), ThumbnailBound)
	require.NoError(t, err)

	assert.Equal(t, 800, res.OriginalWidth)
	assert.Equal(t, 600, res.OriginalHeight)
	assert.Equal(t, 128, res.Width)
	assert.Equal(t, 96, res.Height)

	out, err := jpeg.Decode(bytes.NewReader(res.JPEG))
	require.NoError(t, err)
	assert.Equal(t, 128, out.Bounds().Dx())
	assert.Equal(t, 96, out.Bounds().Dy())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	res, err := Thumbnail(pngBytes(t, 64, 40), ThumbnailBound)
	require.NoError(t, err)

	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 40, res.Height)

	out, err := jpeg.Decode(bytes.NewReader(res.JPEG))
	require.NoError(t, err)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 40, out.Bounds().Dy())
}

func TestThumbnailAcceptsJPEGInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 300, 150)), nil))

	res, err := Thumbnail(buf.Bytes(), ThumbnailBound)
	require.NoError(t, err)
	assert.Equal(t, 128, res.Width)
	assert.Equal(t, 64, res.Height)
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := Thumbnail([]byte("not an image at all"), ThumbnailBound)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDecode))
}
