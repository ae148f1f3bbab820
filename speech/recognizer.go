// Package speech defines the boundary contract for the host's voice-to-text
// capability. The recognition loop itself lives outside this module; callers
// hand recognized text to whichever input is active.
package speech

// ResultHandler receives a recognized utterance.
type ResultHandler func(text string)

// ErrorHandler receives a recognition failure.
type ErrorHandler func(err error)

// Recognizer is the voice-to-text collaborator. Start begins a recognition
// session and reports whether the capability is available; Stop ends it.
// Implementations are treated as black boxes.
type Recognizer interface {
	Start(onResult ResultHandler, onError ErrorHandler) bool
	Stop()
}

// Unsupported is the Recognizer for hosts without voice capture. Start
// always reports the capability as unavailable.
type Unsupported struct{}

var _ Recognizer = Unsupported{}

func (Unsupported) Start(ResultHandler, ErrorHandler) bool { return false }

func (Unsupported) Stop() {}
