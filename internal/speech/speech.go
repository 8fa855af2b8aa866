// Package speech turns interview questions into audio and spoken answers
// into text. It is optional: the terminal client runs fine without it, and
// recognition failures degrade to typed input instead of erroring.
package speech

import "context"

// Synthesizer reads a question out loud. Playback happens in the background
// so the interview loop is not blocked on audio.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Recognizer captures a spoken answer and transcribes it. A failed
// recognition returns an empty string and no error so the caller can fall
// back to typed input.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}
