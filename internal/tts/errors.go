package tts

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the class of failure reported to the user.
type ErrorKind string

const (
	KindVoiceNotFound       ErrorKind = "VOICE_NOT_FOUND"
	KindVoiceNotInstalled   ErrorKind = "VOICE_NOT_INSTALLED"
	KindFileNotFound        ErrorKind = "FILE_NOT_FOUND"
	KindUnsupportedFileType ErrorKind = "UNSUPPORTED_FILE_TYPE"
	KindEmptyFile           ErrorKind = "EMPTY_FILE"
	KindNoTextProvided      ErrorKind = "NO_TEXT_PROVIDED"
	KindInvalidSpeed        ErrorKind = "INVALID_SPEED"
	KindDownloadFailed      ErrorKind = "DOWNLOAD_FAILED"
	KindSynthesisFailed     ErrorKind = "SYNTHESIS_FAILED"
	KindPlaybackFailed      ErrorKind = "PLAYBACK_FAILED"
	KindConfigError         ErrorKind = "CONFIG_ERROR"
	KindEngineNotFound      ErrorKind = "ENGINE_NOT_FOUND"
	KindOther               ErrorKind = "OTHER"
)

// Sentinel errors usable with errors.Is. An *Error matches the sentinel of
// its kind.
var (
	ErrVoiceNotFound       = &Error{Kind: KindVoiceNotFound}
	ErrVoiceNotInstalled   = &Error{Kind: KindVoiceNotInstalled}
	ErrFileNotFound        = &Error{Kind: KindFileNotFound}
	ErrUnsupportedFileType = &Error{Kind: KindUnsupportedFileType}
	ErrEmptyFile           = &Error{Kind: KindEmptyFile}
	ErrNoTextProvided      = &Error{Kind: KindNoTextProvided}
	ErrInvalidSpeed        = &Error{Kind: KindInvalidSpeed}
	ErrDownloadFailed      = &Error{Kind: KindDownloadFailed}
	ErrSynthesisFailed     = &Error{Kind: KindSynthesisFailed}
	ErrPlaybackFailed      = &Error{Kind: KindPlaybackFailed}
	ErrConfig              = &Error{Kind: KindConfigError}
	ErrEngineNotFound      = &Error{Kind: KindEngineNotFound}
)

// Error is a user-facing failure. Message is the subject of the error (a
// voice id, a path, a reason) and Cause the underlying error, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
	// Suggestions holds alternative values, e.g. similar voice ids.
	Suggestions []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var s string
	switch e.Kind {
	case KindVoiceNotFound:
		s = fmt.Sprintf("Voice '%s' not found", e.Message)
	case KindVoiceNotInstalled:
		s = fmt.Sprintf("Voice '%s' not installed", e.Message)
	case KindFileNotFound:
		s = "File not found: " + e.Message
	case KindUnsupportedFileType:
		s = "Unsupported file type: " + e.Message
	case KindEmptyFile:
		s = "Empty file: " + e.Message
	case KindNoTextProvided:
		s = "No text provided"
	case KindInvalidSpeed:
		s = "Invalid speed: " + e.Message
	case KindDownloadFailed:
		s = "Download failed: " + e.Message
	case KindSynthesisFailed:
		s = "TTS synthesis failed: " + e.Message
	case KindPlaybackFailed:
		s = "Audio playback failed: " + e.Message
	case KindConfigError:
		s = "Config error: " + e.Message
	case KindEngineNotFound:
		s = "TTS engine not found: " + e.Message
	default:
		s = e.Message
	}
	if e.Cause != nil {
		if s == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", s, e.Cause)
	}
	return s
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func VoiceNotFound(id string, suggestions ...string) *Error {
	return &Error{Kind: KindVoiceNotFound, Message: id, Suggestions: suggestions}
}

func VoiceNotInstalled(id string) *Error {
	return &Error{Kind: KindVoiceNotInstalled, Message: id}
}

func FileNotFound(path string, cause error) *Error {
	return &Error{Kind: KindFileNotFound, Message: path, Cause: cause}
}

func UnsupportedFileType(ext string) *Error {
	return &Error{Kind: KindUnsupportedFileType, Message: ext}
}

func EmptyFile(path string) *Error {
	return &Error{Kind: KindEmptyFile, Message: path}
}

func NoTextProvided() *Error {
	return &Error{Kind: KindNoTextProvided}
}

func DownloadFailed(message string, cause error) *Error {
	return &Error{Kind: KindDownloadFailed, Message: message, Cause: cause}
}

func SynthesisFailed(message string, cause error) *Error {
	return &Error{Kind: KindSynthesisFailed, Message: message, Cause: cause}
}

func PlaybackFailed(message string, cause error) *Error {
	return &Error{Kind: KindPlaybackFailed, Message: message, Cause: cause}
}

func ConfigError(message string) *Error {
	return &Error{Kind: KindConfigError, Message: message}
}

func Other(message string, cause error) *Error {
	return &Error{Kind: KindOther, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindOther.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// Tips returns remediation hints for the error.
func (e *Error) Tips() []string {
	switch e.Kind {
	case KindVoiceNotFound:
		tips := make([]string, 0, len(e.Suggestions)+2)
		for _, s := range e.Suggestions {
			tips = append(tips, fmt.Sprintf("bibo -v %s \"text\"  # Did you mean %s?", s, s))
		}
		return append(tips,
			"bibo -l          # List installed voices",
			"bibo -d list     # Show downloadable voices",
		)
	case KindVoiceNotInstalled:
		return []string{
			fmt.Sprintf("bibo -d %s  # Download this voice", e.Message),
			"bibo -d list     # Show all downloadable voices",
		}
	case KindFileNotFound:
		return []string{
			"Check the file path for typos",
			"Use absolute path: bibo -i /full/path/to/file.md",
		}
	case KindUnsupportedFileType:
		return []string{
			"bibo -i file.md   # Markdown files",
			"bibo -i file.txt  # Text files",
			"bibo \"text\"       # Or just pass text directly",
		}
	case KindEmptyFile:
		return []string{
			"Check if the file contains text content",
			"For Markdown: ensure text outside code blocks",
		}
	case KindNoTextProvided:
		return []string{
			"bibo \"Hello world\"     # Direct text",
			"bibo -i README.md      # From file",
		}
	case KindInvalidSpeed:
		return []string{
			"bibo \"text\" -s slow   # Slow speed",
			"bibo \"text\" -s normal # Normal speed",
			"bibo \"text\" -s fast   # Fast speed",
			"bibo \"text\" -f        # Fast mode shortcut",
		}
	case KindDownloadFailed:
		return []string{
			"Check your internet connection",
			"Try again later",
			"Set BIBO_MIRROR if HuggingFace or GitHub is blocked",
		}
	case KindSynthesisFailed, KindPlaybackFailed:
		return []string{
			"Check if voice model is valid",
			"bibo -d <voice>  # Re-download the voice",
		}
	case KindEngineNotFound:
		return []string{
			"bibo engine      # Download the native TTS engine",
			"Set BIBO_SHERPA_PATH to an existing sherpa-onnx-offline-tts binary",
		}
	default:
		return []string{"bibo --help  # Show usage"}
	}
}
