// Package imaging implements the thumbnail pipeline: decode, resize within a
// bounding box preserving aspect ratio, re-encode as JPEG.
package imaging

import (
	"bytes"
	"image"
	"image/jpeg"

	"userprofile/internal/apperr"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"
)

// ThumbnailBound is the maximum edge length of a derived thumbnail.
const ThumbnailBound = 128

// Result holds the re-encoded thumbnail and the dimensions on both sides of
// the transform.
type Result struct {
	JPEG           []byte
	OriginalWidth  int
	OriginalHeight int
	Width          int
	Height         int
}

// Fit returns the dimensions of an image scaled to fit within bound×bound.
// Images already inside the box keep their dimensions (never upscale).
// Otherwise the larger edge becomes exactly bound and the other edge scales
// proportionally, floored, with at least 1 pixel. Integer arithmetic only:
// a float scale factor can land the larger edge on bound-1.
func Fit(w, h, bound int) (int, int) {
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		nh := h * bound / w
		if nh < 1 {
			nh = 1
		}
		return bound, nh
	}
	nw := w * bound / h
	if nw < 1 {
		nw = 1
	}
	return nw, bound
}

// Thumbnail decodes data (JPEG, PNG or GIF), scales it to fit within
// bound×bound and re-encodes it as JPEG.
func Thumbnail(data []byte, bound int) (*Result, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDecode, "decode image", err)
	}

	ow := src.Bounds().Dx()
	oh := src.Bounds().Dy()
	nw, nh := Fit(ow, oh, bound)

	out := src
	if nw != ow || nh != oh {
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, nil); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageWrite, "encode thumbnail as jpeg", err)
	}
	return &Result{
		JPEG:           buf.Bytes(),
		OriginalWidth:  ow,
		OriginalHeight: oh,
		Width:          nw,
		Height:         nh,
	}, nil
}
