// Package imagetools prepares uploaded note photos for the AI pipeline:
// decode, downscale and re-encode so payloads stay under the provider's
// inline data limit.
package imagetools

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"
)

// Phone cameras commonly produce 4000px+ photos; anything past this width
// adds tokens without adding legibility for OCR.
const maxDimension = 2048

// Prepare normalizes an uploaded image for inline submission. Output is
// always JPEG; the quality drops stepwise until the payload fits maxBytes.
func Prepare(data []byte, mimeType string, maxBytes int64) ([]byte, string, error) {
	img, err := decode(data, mimeType)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	for _, quality := range []int{85, 70, 55, 40} {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, "", fmt.Errorf("failed to encode image: %w", err)
		}
		if int64(buf.Len()) <= maxBytes {
			return buf.Bytes(), "image/jpeg", nil
		}
	}

	return nil, "", fmt.Errorf("image exceeds %d bytes even at lowest quality", maxBytes)
}

func decode(data []byte, mimeType string) (image.Image, error) {
	// WebP no está cubierto por imaging, se decodifica aparte
	if mimeType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
