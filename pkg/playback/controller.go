package playback

// Controller is the capability interface a playback surface exposes to the
// session core. Injecting it removes any need to pass raw player handles
// through event payloads.
type Controller interface {
	// Seek moves the playback position.
	Seek(timeMs int)

	// Play resumes playback.
	Play()

	// Pause halts playback.
	Pause()

	// CurrentFrameImage returns the current video frame as a data URL,
	// or false when the surface cannot capture frames (audio-only
	// sessions, headless simulation).
	CurrentFrameImage() (string, bool)
}
