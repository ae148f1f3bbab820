package speech

import (
	"context"

	"github.com/pkg/errors"
)

// ErrUnavailable is returned when the host exposes no voice capability.
var ErrUnavailable = errors.New("voice recognition is not available")

// Dictate captures a single utterance through the recognizer. It returns the
// first recognized result, the first recognition failure, or the context's
// error, whichever comes first. The recognizer is always stopped before
// returning.
func Dictate(ctx context.Context, r Recognizer) (string, error) {
	results := make(chan string, 1)
	failures := make(chan error, 1)

	started := r.Start(
		func(text string) {
			select {
			case results <- text:
			default:
			}
		},
		func(err error) {
			select {
			case failures <- err:
			default:
			}
		},
	)
	if !started {
		return "", ErrUnavailable
	}
	defer r.Stop()

	select {
	case text := <-results:
		return text, nil
	case err := <-failures:
		return "", errors.Wrap(err, "[Dictate]")
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "[Dictate]")
	}
}
