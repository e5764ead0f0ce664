package tts

import "context"

// Engine defines the interface that every synthesis backend must satisfy.
// Backends run an external process; the Go side only builds the command line
// and checks the result.
type Engine interface {
	// SynthesizeToFile renders text with the voice described by h and writes
	// a WAV file to dest. lengthScale controls speech duration (1.0 is
	// normal, smaller is faster).
	SynthesizeToFile(ctx context.Context, h Handle, text string, lengthScale float64, dest string) error

	// Name returns the backend name, e.g. "piper" or "sherpa".
	Name() string
}

// Handle holds the resolved on-disk files for one installed voice. It is
// built per invocation and never persisted.
type Handle struct {
	VoiceID string

	// ModelPath is the ONNX model, present for every backend.
	ModelPath string
	// ConfigPath is the piper JSON config next to the model.
	ConfigPath string

	// Sherpa voices.
	TokensPath  string
	LexiconPath string
	DictDir     string
	DataDir     string

	// SampleRate is the declared output rate of the voice.
	SampleRate int
}
