package playback

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"go.jacobcolvin.com/asciivid/glyph"
	"go.jacobcolvin.com/asciivid/source"
)

const (
	progressInterval = 10
	maxPrealloc      = 1 << 14
)

// Sequence is a fully loaded video, in presentation order.
type Sequence []glyph.Frame

// Converter turns one decoded frame into a [glyph.Frame].
type Converter interface {
	Convert(img image.Image) (glyph.Frame, error)
}

// Load reads every frame of src, converts it, and returns them in order.
//
// Loading is all-or-nothing: the first read or conversion error is returned
// and no partial sequence is kept. A source that yields no frames is
// reported as [source.ErrUnavailable]. If ctx is cancelled, its error is
// returned.
func Load(ctx context.Context, src source.Source, conv Converter, logger *slog.Logger) (Sequence, error) {
	meta := src.Metadata()
	seq := make(Sequence, 0, min(max(meta.FrameCount, 0), maxPrealloc))

	for {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", len(seq)+1, err)
		}

		f, err := conv.Convert(img)
		if err != nil {
			return nil, fmt.Errorf("converting frame %d: %w", len(seq)+1, err)
		}

		seq = append(seq, f)

		if len(seq)%progressInterval == 0 {
			attrs := []any{slog.Int("frame", len(seq))}
			if meta.FrameCount > 0 {
				attrs = append(attrs,
					slog.Int("total", meta.FrameCount),
					slog.String("progress", fmt.Sprintf("%.1f%%", float64(len(seq))/float64(meta.FrameCount)*100)),
				)
			}

			logger.InfoContext(ctx, "processing", attrs...)
		}
	}

	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: no frames decoded", source.ErrUnavailable)
	}

	logger.InfoContext(ctx, "frames loaded", slog.Int("count", len(seq)))

	return seq, nil
}
