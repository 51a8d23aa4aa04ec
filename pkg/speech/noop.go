package speech

import "context"

// NoopRecognizer reports the capability as missing.
type NoopRecognizer struct{}

func (NoopRecognizer) Start(context.Context) (<-chan string, error) {
	return nil, ErrUnsupported
}

func (NoopRecognizer) Stop() {}

// NoopSynthesizer silently drops all output.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Speak(context.Context, string) error {
	return nil
}

func (NoopSynthesizer) Cancel() {}
