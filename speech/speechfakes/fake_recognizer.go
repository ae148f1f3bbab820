package speechfakes

import (
	"sync"

	"github.com/jrsteele09/go-travel-client/speech"
)

var _ speech.Recognizer = (*FakeRecognizer)(nil)

// FakeRecognizer is a scripted speech.Recognizer for tests. Start delivers
// the scripted result or error on a goroutine, the way a real recognizer
// reports asynchronously.
type FakeRecognizer struct {
	// Result is delivered to the result handler when Start is called.
	Result string
	// Err, when non-nil, is delivered to the error handler instead of Result.
	Err error
	// Unavailable makes Start report the capability as missing.
	Unavailable bool

	lock    sync.Mutex
	started bool
	stopped bool
}

func NewFakeRecognizer(result string) *FakeRecognizer {
	return &FakeRecognizer{Result: result}
}

func (fr *FakeRecognizer) Start(onResult speech.ResultHandler, onError speech.ErrorHandler) bool {
	if fr.Unavailable {
		return false
	}

	fr.lock.Lock()
	fr.started = true
	fr.lock.Unlock()

	go func() {
		if fr.Err != nil {
			onError(fr.Err)
			return
		}
		onResult(fr.Result)
	}()
	return true
}

func (fr *FakeRecognizer) Stop() {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.stopped = true
}

// Started reports whether a recognition session was begun.
func (fr *FakeRecognizer) Started() bool {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	return fr.started
}

// Stopped reports whether the session was ended.
func (fr *FakeRecognizer) Stopped() bool {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	return fr.stopped
}
