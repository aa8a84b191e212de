package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// twoRows is a 1x2 image read bottom row first: red below, blue on top.
var twoRows = []byte{
	255, 0, 0, 255,
	0, 0, 255, 255,
}

func TestFlipRGBA(t *testing.T) {
	img, err := FlipRGBA(twoRows, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0), "top row comes from the last GL row")
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))
}

func TestFlipRGBASizeMismatch(t *testing.T) {
	_, err := FlipRGBA(twoRows, 2, 2)
	assert.Error(t, err)
}

func TestNewScreenshotCaptureFormat(t *testing.T) {
	_, err := NewScreenshotCapture("", "shot", "gif")
	assert.ErrorIs(t, err, ErrFormat)

	sc, err := NewScreenshotCapture("", "shot", "BMP")
	require.NoError(t, err)
	assert.Equal(t, FormatBMP, sc.format)
}

func TestGenerateFilename(t *testing.T) {
	sc, err := NewScreenshotCapture("out", "attractor", FormatPNG)
	require.NoError(t, err)
	sc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 42*int(time.Millisecond), time.UTC) }

	assert.Equal(t, filepath.Join("out", "attractor_2024-03-05_14-07-09_042.png"), sc.GenerateFilename())
}

func decodeFile(t *testing.T, path string, decode func(f *os.File) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := decode(f)
	require.NoError(t, err)
	return img
}

func TestCaptureFromPixels(t *testing.T) {
	tests := []struct {
		format string
		decode func(f *os.File) (image.Image, error)
	}{
		{FormatPNG, func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{FormatBMP, func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shots")
			sc, err := NewScreenshotCapture(dir, "attractor", tt.format)
			require.NoError(t, err)

			path, err := sc.CaptureFromPixels(twoRows, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, "."+tt.format, filepath.Ext(path))

			img := decodeFile(t, path, tt.decode)
			assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())

			r, g, b, _ := img.At(0, 0).RGBA()
			assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
			r, g, b, _ = img.At(0, 1).RGBA()
			assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
		})
	}
}
