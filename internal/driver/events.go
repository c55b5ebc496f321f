package driver

import "context"

// EventStatus is the state a file has reached in a directory run.
type EventStatus uint8

const (
	// FileStarted is sent before the file is loaded.
	FileStarted EventStatus = iota
	FileDone
	FileFailed
)

func (s EventStatus) String() string {
	switch s {
	case FileStarted:
		return "started"
	case FileDone:
		return "done"
	case FileFailed:
		return "failed"
	}
	return "unknown"
}

// Event describes progress of one file inside TokenizeDir or ParseDir.
type Event struct {
	Path   string
	Index  int
	Total  int
	Status EventStatus
	Errors int
}

// emit blocks until the event is taken or ctx is done.
func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}
