// Package source provides decoded video frames, in presentation order.
//
// A [Source] reports [Metadata] and yields frames one at a time through
// [Source.Next] until it returns [io.EOF]. [Open] picks an implementation
// from the path:
//
//   - "pattern:WxHxN[@FPS]" generates a synthetic clip ([Pattern]).
//   - A directory is read as numbered PNG or JPEG frames ([Dir]).
//   - Anything else is decoded with ffmpeg ([Video]).
//
// Any failure to open a source wraps [ErrUnavailable].
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"time"
)

// ErrUnavailable indicates a source that is missing or cannot be decoded.
var ErrUnavailable = errors.New("source unavailable")

// Metadata describes a source.
type Metadata struct {
	// Codec is a four-character codec tag.
	Codec string `json:"codec" yaml:"codec"`
	// Width and Height are the frame size in pixels.
	Width  int `json:"width"  yaml:"width"`
	Height int `json:"height" yaml:"height"`
	// FrameCount is the nominal number of frames; it may differ from the
	// number of frames actually decoded.
	FrameCount int `json:"frames" yaml:"frames"`
	// FPS is the nominal frame rate, or 0 when unknown.
	FPS float64 `json:"fps" yaml:"fps"`
}

// Duration returns FrameCount / FPS, or 0 when FPS is unknown.
func (m Metadata) Duration() time.Duration {
	if m.FPS <= 0 {
		return 0
	}

	return time.Duration(float64(m.FrameCount) / m.FPS * float64(time.Second))
}

// Source yields decoded frames in order.
type Source interface {
	// Metadata describes the source.
	Metadata() Metadata
	// Next returns the next frame, or [io.EOF] once every frame has been
	// returned. The image may be reused by the following call.
	Next() (image.Image, error)
	// Close releases the source.
	Close() error
}

// PatternPrefix marks a synthetic source path for [Open].
const PatternPrefix = "pattern:"

// Open opens the source named by path.
func Open(ctx context.Context, path string) (Source, error) {
	var (
		src Source
		err error
	)

	if desc, ok := strings.CutPrefix(path, PatternPrefix); ok {
		src, err = ParsePattern(desc)
	} else {
		src, err = openPath(ctx, path)
	}

	if err != nil {
		return nil, err
	}

	return src, nil
}

func openPath(ctx context.Context, path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if info.IsDir() {
		d, err := OpenDir(path)
		if err != nil {
			return nil, err
		}

		return d, nil
	}

	v, err := OpenVideo(ctx, path)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// fourCC normalizes tag to exactly four characters, falling back to name
// when tag is empty or is ffprobe's escaped form of a zero tag.
func fourCC(tag, name string) string {
	if tag == "" || strings.HasPrefix(tag, "[") {
		tag = name
	}

	if tag == "" {
		tag = "????"
	}

	if len(tag) > 4 {
		return tag[:4]
	}

	return tag + strings.Repeat(" ", 4-len(tag))
}
