// Package transform prepares decoded video frames for glyph mapping.
//
// A [Transformer] resizes a color frame to a fixed column width (keeping the
// source aspect ratio), converts it to luminance, applies contrast-limited
// adaptive histogram equalization over a grid of tiles, and finishes with a
// light Gaussian blur. The result is a [*image.Gray] ready for
// [glyph.Build]; [Transformer.Convert] runs both steps.
//
// Create a [Transformer] directly with [New], or from CLI flags via [Config]:
//
//	cfg := transform.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	t, err := cfg.NewTransformer()
//	if err != nil {
//	    return err
//	}
//
//	frame, err := t.Convert(img)
package transform
