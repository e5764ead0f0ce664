// Package engines runs the external speech synthesizers behind the
// tts.Engine interface.
//
// Two backends are available:
//   - piper: the piper-tts Python package, run through "uv run python" or
//     python3. The text is written to the interpreter's stdin.
//   - sherpa: the native sherpa-onnx-offline-tts executable. The text is
//     the last command line argument.
//
// Neither backend goes through a shell, so no text can be interpreted as
// code or options.
package engines
