// Package fraud implements the signal computations and score aggregation that
// decide whether a submission looks genuine.
package fraud

import (
	"bytes"
	"fmt"
	"image"
	"math/bits"
	"strconv"

	// Register decoders for the formats testers upload.
	_ "image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"
)

// HashBits is the size of the perceptual hash in bits.
const HashBits = 64

// ComputePerceptualHash decodes an image and returns its 64-bit pHash as a
// fixed-width hex string. The hash is stable under minor recompression and
// resizing, which is what makes Hamming distance a usable duplicate signal.
func ComputePerceptualHash(data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("perception hash (%s): %w", format, err)
	}

	return fmt.Sprintf("%016x", hash.GetHash()), nil
}

// HammingDistance returns the number of differing bits between two hex-encoded
// 64-bit hashes.
func HammingDistance(a, b string) (int, error) {
	ua, err := strconv.ParseUint(a, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hash %q: %w", a, err)
	}
	ub, err := strconv.ParseUint(b, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hash %q: %w", b, err)
	}
	return bits.OnesCount64(ua ^ ub), nil
}

// NearDuplicate reports whether two hashes are within the given Hamming
// distance threshold.
func NearDuplicate(a, b string, threshold int) (bool, int, error) {
	dist, err := HammingDistance(a, b)
	if err != nil {
		return false, 0, err
	}
	return dist <= threshold, dist, nil
}
