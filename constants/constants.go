package constants

import "os"

// DefaultVelocity is used for note lines without a vel= token,
// normalized 0.0-1.0 (MIDI 64 after rescaling).
const DefaultVelocity = 0.5

// DefaultDuration is zero beats: a note without dur= is instantaneous.
const DefaultDuration = 0.0

// PPQN is the MIDI tick resolution used by the encoder. Beat positions
// map linearly onto ticks at this resolution, regardless of tempo.
const PPQN = 480

// SupportedMajor is the only mtxt header major version we accept.
const SupportedMajor = 1

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

func GetOutputDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetBindAddr() string {
	addr := os.Getenv("BIND_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}
