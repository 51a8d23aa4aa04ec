// Package speech abstracts voice input and output behind small capability
// interfaces. The session controller depends only on these; concrete
// adapters wrap whatever the platform provides.
package speech

import (
	"context"
	"errors"
)

// ErrUnsupported is returned when the platform has no speech capability.
// Callers surface it once and disable the feature for the session.
var ErrUnsupported = errors.New("speech is not supported on this platform")

// Recognizer captures one utterance per Start call. The returned channel
// delivers the final transcript and is closed afterwards; Stop aborts the
// capture and the channel closes without a value.
type Recognizer interface {
	Start(ctx context.Context) (<-chan string, error)
	Stop()
}

// Synthesizer vocalizes assistant replies. Speak blocks until playback ends
// or the context is cancelled; Cancel aborts any in-progress playback.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
	Cancel()
}
