package source

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoding.
	_ "image/png"  // Register PNG decoding.
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var frameExts = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
}

// Dir reads a directory of still images as frames, sorted by file name.
//
// Create instances with [OpenDir].
type Dir struct {
	dir   string
	names []string
	meta  Metadata
	next  int
}

// OpenDir lists the PNG and JPEG files in dir. Frame dimensions are taken
// from the first file; the frame rate is unknown.
func OpenDir(dir string) (*Dir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading directory: %w", ErrUnavailable, err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if _, ok := frameExts[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			names = append(names, e.Name())
		}
	}

	slices.Sort(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no PNG or JPEG files found in %s", ErrUnavailable, dir)
	}

	cfg, err := decodeConfig(filepath.Join(dir, names[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, names[0], err)
	}

	return &Dir{
		dir:   dir,
		names: names,
		meta: Metadata{
			Codec:      fourCC(frameExts[strings.ToLower(filepath.Ext(names[0]))], ""),
			Width:      cfg.Width,
			Height:     cfg.Height,
			FrameCount: len(names),
		},
	}, nil
}

// Metadata returns the directory metadata.
func (d *Dir) Metadata() Metadata {
	return d.meta
}

// Next decodes the next file.
func (d *Dir) Next() (image.Image, error) {
	if d.next >= len(d.names) {
		return nil, io.EOF
	}

	name := d.names[d.next]
	d.next++

	img, err := decodeFile(filepath.Join(d.dir, name))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return img, nil
}

// Close is a no-op.
func (d *Dir) Close() error {
	return nil
}

func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path) //nolint:gosec // Frame paths come from a user-chosen directory.
	if err != nil {
		return image.Config{}, err
	}

	defer f.Close() //nolint:errcheck // Read-only file.

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, err
	}

	return cfg, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // Frame paths come from a user-chosen directory.
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck // Read-only file.

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return img, nil
}
