package fraud

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientPNG renders a simple gradient so the perceptual hash has structure.
func gradientPNG(t *testing.T, shift uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(4*x) + shift})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestComputePerceptualHash(t *testing.T) {
	hash, err := ComputePerceptualHash(gradientPNG(t, 0))
	require.NoError(t, err)
	assert.Len(t, hash, 16)

	// Identical bytes hash identically.
	again, err := ComputePerceptualHash(gradientPNG(t, 0))
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	// A uniform brightness shift barely moves the hash.
	shifted, err := ComputePerceptualHash(gradientPNG(t, 8))
	require.NoError(t, err)
	dist, err := HammingDistance(hash, shifted)
	require.NoError(t, err)
	assert.LessOrEqual(t, dist, DefaultHammingThreshold)
}

func TestComputePerceptualHash_NotAnImage(t *testing.T) {
	_, err := ComputePerceptualHash([]byte("definitely not pixels"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}

func TestHammingDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "ffffffffffffffff", "ffffffffffffffff", 0},
		{"all bits differ", "0000000000000000", "ffffffffffffffff", 64},
		{"one bit", "0000000000000000", "0000000000000001", 1},
		{"nibble", "00000000000000f0", "0000000000000000", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := HammingDistance(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dist)
		})
	}
}

func TestHammingDistance_MalformedHash(t *testing.T) {
	_, err := HammingDistance("not-hex", "0000000000000000")
	require.Error(t, err)

	_, err = HammingDistance("0000000000000000", "zz")
	require.Error(t, err)
}

func TestNearDuplicate(t *testing.T) {
	near, dist, err := NearDuplicate("0000000000000000", "0000000000000003", DefaultHammingThreshold)
	require.NoError(t, err)
	assert.True(t, near)
	assert.Equal(t, 2, dist)

	near, dist, err = NearDuplicate("0000000000000000", "ffffffffffffffff", DefaultHammingThreshold)
	require.NoError(t, err)
	assert.False(t, near)
	assert.Equal(t, 64, dist)
}
