// ABOUTME: Streaming engine package
// ABOUTME: Moves decoded samples from sources to output backends in real time
// Package stream plays audio.Source cursors through an output.Backend.
//
// Every playback gets a channel: a driver goroutine that reads the source
// in chunks and writes into a lock-free ring buffer, and an output whose
// device thread pulls from the same ring. The driver paces itself by how
// full the ring is; the device thread never waits and plays silence when
// not enough audio is buffered.
//
// Example:
//
//	engine, err := stream.NewEngine(stream.Config{Backend: backend})
//	sound := engine.NewSound("intro", src)
//	h, err := sound.Play(ctx, stream.PlayParams{Times: 2})
//	err = h.Wait(ctx)
package stream
