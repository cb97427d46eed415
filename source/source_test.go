package source_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/source"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func drain(t *testing.T, src source.Source) []image.Image {
	t.Helper()

	var frames []image.Image

	for {
		img, err := src.Next()
		if err == io.EOF {
			return frames
		}

		require.NoError(t, err)

		frames = append(frames, img)
	}
}

func TestOpenUnavailable(t *testing.T) {
	t.Parallel()

	empty := t.TempDir()

	tcs := map[string]struct {
		path string
	}{
		"missing file": {
			path: filepath.Join(t.TempDir(), "nope.mp4"),
		},
		"empty directory": {
			path: empty,
		},
		"bad pattern": {
			path: "pattern:10x10",
		},
		"zero pattern frames": {
			path: "pattern:10x10x0",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src, err := source.Open(context.Background(), tc.path)
			require.ErrorIs(t, err, source.ErrUnavailable)
			assert.Nil(t, src)
		})
	}
}

func TestOpenDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Written out of order; frames must come back sorted by name.
	writePNG(t, filepath.Join(dir, "frame_00003.png"), 6, 4, color.White)
	writePNG(t, filepath.Join(dir, "frame_00001.png"), 6, 4, color.Black)
	writePNG(t, filepath.Join(dir, "frame_00002.PNG"), 6, 4, color.Gray{Y: 128})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	src, err := source.Open(context.Background(), dir)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, src.Close()) })

	assert.Equal(t, source.Metadata{Codec: "png ", Width: 6, Height: 4, FrameCount: 3}, src.Metadata())

	frames := drain(t, src)
	require.Len(t, frames, 3)

	lum := func(img image.Image) uint8 {
		return color.GrayModel.Convert(img.At(0, 0)).(color.Gray).Y
	}

	assert.Equal(t, uint8(0), lum(frames[0]))
	assert.Equal(t, uint8(128), lum(frames[1]))
	assert.Equal(t, uint8(255), lum(frames[2]))

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenDirCorruptFrame(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writePNG(t, filepath.Join(dir, "a.png"), 2, 2, color.White)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("not a png"), 0o644))

	src, err := source.OpenDir(dir)
	require.NoError(t, err)

	_, err = src.Next()
	require.NoError(t, err)

	_, err = src.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestMetadataDuration(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		meta source.Metadata
		want time.Duration
	}{
		"known rate": {
			meta: source.Metadata{FrameCount: 90, FPS: 30},
			want: 3 * time.Second,
		},
		"unknown rate": {
			meta: source.Metadata{FrameCount: 90},
			want: 0,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.meta.Duration())
		})
	}
}
