package progress

import (
	"sync"
	"time"
)

// Stage represents the current stage of a pipeline run
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageCollecting   Stage = "collecting"
	StageFetching     Stage = "fetching"
	StageScoring      Stage = "scoring"
	StageAggregating  Stage = "aggregating"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Event is delivered to listeners on every stage or item change.
type Event struct {
	Stage       Stage
	Progress    float64
	Message     string
	Timestamp   time.Time
	ItemDetails *ItemDetails
	Error       string
}

// ItemDetails describes the unit (month, song) currently being processed
type ItemDetails struct {
	Current   int
	Total     int
	Processed int
	Item      string
}

// Tracker records the stage of one run and fans events out to listeners.
type Tracker struct {
	mu        sync.RWMutex
	current   Event
	nextID    int
	listeners map[int]func(Event)
}

func NewTracker() *Tracker {
	return &Tracker{
		current:   Event{Stage: StageInitializing},
		listeners: make(map[int]func(Event)),
	}
}

// AddListener registers listener and returns the function that removes it.
func (pt *Tracker) AddListener(listener func(Event)) (remove func()) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	id := pt.nextID
	pt.nextID++
	pt.listeners[id] = listener

	return func() {
		pt.mu.Lock()
		defer pt.mu.Unlock()
		delete(pt.listeners, id)
	}
}

// UpdateProgress moves to stage and clears any item details.
func (pt *Tracker) UpdateProgress(stage Stage, progress float64, message string) {
	pt.publish(func(e *Event) {
		e.Stage = stage
		e.Progress = progress
		e.Message = message
		e.ItemDetails = nil
	})
}

// UpdateItemProgress updates item-specific progress within the current stage
func (pt *Tracker) UpdateItemProgress(current, total, processed int, item string) {
	pt.publish(func(e *Event) {
		e.ItemDetails = &ItemDetails{
			Current:   current,
			Total:     total,
			Processed: processed,
			Item:      item,
		}
	})
}

// SetError moves to the error stage, keeping the progress reached so far.
func (pt *Tracker) SetError(err error) {
	pt.publish(func(e *Event) {
		e.Stage = StageError
		e.Message = err.Error()
		e.Error = err.Error()
		e.ItemDetails = nil
	})
}

// CurrentState returns the last published event.
func (pt *Tracker) CurrentState() Event {
	pt.mu.RLock()
	defer pt.mu.RUnlock()
	return pt.current
}

func (pt *Tracker) publish(update func(*Event)) {
	pt.mu.Lock()
	update(&pt.current)
	pt.current.Timestamp = time.Now()
	event := pt.current
	listeners := make([]func(Event), 0, len(pt.listeners))
	for id := 0; id < pt.nextID; id++ {
		if l, ok := pt.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	pt.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}
