// Package display writes composed frames to a terminal.
//
// The [Driver] owns the cursor protocol: the screen is cleared once, before
// the first frame, and every later frame only homes the cursor and overwrites
// the previous one in place. Each frame is preceded by a header of
// [layout.HeaderLines] lines (title, status, separator rule).
//
// Per-playback mutable data lives in a [State] that the caller owns and
// passes to every [Driver.Render] call.
//
// Terminal size is read through a [GeometryProvider]; [TerminalGeometry]
// polls the real terminal, [StaticGeometry] returns a fixed size.
package display
