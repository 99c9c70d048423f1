// Package fingerprint computes 64-bit perceptual image fingerprints and
// matches them by Hamming-distance similarity.
//
// The fingerprint is a difference hash: the image is reduced to a small
// luminance grid and each bit encodes whether a pixel is brighter than its
// horizontal neighbor. Identical bytes always produce the identical hash,
// and visually similar images land within a few bits of each other.
package fingerprint

import (
	"bytes"
	"image"

	// Only JPEG and PNG decoders are registered. GIF and other formats are
	// intentionally not recognized as fingerprintable media.
	_ "image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// Bits is the fingerprint width in bits.
const Bits = 64

// ErrUndecodable signals that the supplied bytes could not be decoded as an
// image. This is an expected, frequent outcome for link posts and dead
// media, not an anomaly; callers skip fingerprinting and move on.
var ErrUndecodable = errors.NewStd("media is not a decodable image")

// Compute decodes imageData and returns its 64-bit difference hash.
func Compute(imageData []byte) (uint64, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return 0, errors.New(errors.Join(ErrUndecodable, err)).
			Component("fingerprint").
			Category(errors.CategoryImageDecode).
			Build()
	}

	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return 0, errors.New(err).
			Component("fingerprint").
			Category(errors.CategoryImageDecode).
			Build()
	}

	return hash.GetHash(), nil
}
