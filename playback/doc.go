// Package playback loads a video into memory as glyph frames and presents
// them at a fixed rate.
//
// A [Session] moves through [StateIdle], [StateLoading] and [StatePlaying]
// and ends in [StateCompleted] or [StateInterrupted]:
//
//   - Loading pulls every frame from a [source.Source], converts it, and
//     keeps the whole [Sequence] in memory. Nothing is shown until loading
//     finishes, and any loading error ends the session.
//   - Playing hands each frame, in order, to a [Player], which lays it out
//     for the current terminal size, renders it, and sleeps for 1/fps.
//
// Cancelling the context is the interrupt signal. It is checked between
// frames, never in the middle of one, and ends the session in
// [StateInterrupted] without an error.
//
//	sess := playback.NewSession(player, transformer,
//	    playback.WithLogger(logger),
//	    playback.WithStartDelay(time.Second),
//	)
//
//	report, err := sess.Run(ctx, "clip.mp4")
package playback
