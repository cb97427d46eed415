// Package glyph maps single-channel intensity samples onto characters.
//
// A [Palette] is an ordered ramp of characters from the darkest to the
// brightest visual weight. [Palette.Map] turns one intensity in [0, 255] into
// one character, and [Build] applies it across a whole [*image.Gray] to
// produce a [Frame]: one string per pixel row, every row the same width.
//
//	p, err := glyph.NewPalette(" .:-=+*#%@")
//	if err != nil {
//	    return err
//	}
//
//	f := glyph.Build(gray, p)
//	fmt.Println(strings.Join(f, "\n"))
package glyph
