package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Video decodes a video file through an ffmpeg rawvideo pipe.
//
// Create instances with [OpenVideo].
type Video struct {
	meta   Metadata
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	cancel context.CancelFunc
	buf    []byte
	path   string
	done   bool
}

// OpenVideo probes path with ffprobe and starts ffmpeg to decode it into raw
// RGBA frames at the native resolution.
func OpenVideo(ctx context.Context, path string) (*Video, error) {
	for _, bin := range []string{"ffprobe", "ffmpeg"} {
		_, err := exec.LookPath(bin)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: %s not found in PATH: install ffmpeg or use a directory of PNG frames instead",
				ErrUnavailable, bin,
			)
		}
	}

	data, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("%w: probing %s: %w", ErrUnavailable, path, err)
	}

	meta, err := ParseProbe([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}

	args := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"format":   "rawvideo",
			"pix_fmt":  "rgba",
			"loglevel": "error",
		}).
		GetArgs()

	ctx, cancel := context.WithCancel(ctx)

	//nolint:gosec // path is a user-provided CLI argument, not untrusted input.
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()

		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		cancel()

		return nil, fmt.Errorf("%w: starting ffmpeg: %w", ErrUnavailable, err)
	}

	return &Video{
		meta:   meta,
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		cancel: cancel,
		buf:    make([]byte, meta.Width*meta.Height*4),
		path:   path,
	}, nil
}

// Metadata returns the probed metadata.
func (v *Video) Metadata() Metadata {
	return v.meta
}

// Next reads the next raw frame from the pipe.
func (v *Video) Next() (image.Image, error) {
	if v.done {
		return nil, io.EOF
	}

	_, err := io.ReadFull(v.stdout, v.buf)
	if errors.Is(err, io.EOF) {
		v.done = true

		waitErr := v.cmd.Wait()
		if waitErr != nil {
			return nil, fmt.Errorf("decoding %s: %w: %s", v.path, waitErr, strings.TrimSpace(v.stderr.String()))
		}

		return nil, io.EOF
	}

	if err != nil {
		return nil, fmt.Errorf("reading frame from %s: %w", v.path, err)
	}

	return &image.RGBA{
		Pix:    v.buf,
		Stride: v.meta.Width * 4,
		Rect:   image.Rect(0, 0, v.meta.Width, v.meta.Height),
	}, nil
}

// Close stops ffmpeg and waits for it to exit.
func (v *Video) Close() error {
	v.cancel()

	if !v.done {
		v.done = true
		//nolint:errcheck // Error is expected after context cancellation.
		v.cmd.Wait()
	}

	return nil
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	CodecTag     string `json:"codec_tag_string"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
	Tags         struct {
		Rotate string `json:"rotate"`
	} `json:"tags"`
	SideDataList []struct {
		Rotation float64 `json:"rotation"`
	} `json:"side_data_list"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// quarterTurn reports whether the stream's display rotation is 90 or 270
// degrees, in which case ffmpeg's autorotation swaps the output dimensions.
func (s probeStream) quarterTurn() bool {
	rot := 0.0

	for _, sd := range s.SideDataList {
		if sd.Rotation != 0 {
			rot = sd.Rotation

			break
		}
	}

	if rot == 0 && s.Tags.Rotate != "" {
		r, err := strconv.ParseFloat(s.Tags.Rotate, 64)
		if err == nil {
			rot = r
		}
	}

	deg := int(math.Round(rot)) % 360
	if deg < 0 {
		deg += 360
	}

	return deg == 90 || deg == 270
}

// ParseProbe extracts [Metadata] for the first video stream of ffprobe's
// JSON output.
func ParseProbe(data []byte) (Metadata, error) {
	var out probeOutput

	err := json.Unmarshal(data, &out)
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}

		if s.Width <= 0 || s.Height <= 0 {
			return Metadata{}, fmt.Errorf("video stream has no dimensions: %dx%d", s.Width, s.Height)
		}

		m := Metadata{
			Codec:  fourCC(s.CodecTag, s.CodecName),
			Width:  s.Width,
			Height: s.Height,
			FPS:    parseRate(s.AvgFrameRate),
		}

		if s.quarterTurn() {
			m.Width, m.Height = m.Height, m.Width
		}

		if m.FPS == 0 {
			m.FPS = parseRate(s.RFrameRate)
		}

		m.FrameCount, err = strconv.Atoi(s.NbFrames)
		if err != nil {
			duration := s.Duration
			if duration == "" {
				duration = out.Format.Duration
			}

			secs, parseErr := strconv.ParseFloat(duration, 64)
			if parseErr == nil {
				m.FrameCount = int(math.Round(secs * m.FPS))
			}
		}

		return m, nil
	}

	return Metadata{}, errors.New("no video stream")
}

// parseRate parses an ffprobe rational such as "30000/1001". Unparseable or
// zero-denominator rates yield 0.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}

		return f
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}

	return n / d
}
