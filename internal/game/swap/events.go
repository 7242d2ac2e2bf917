package swap

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	ItemChanged EventKind = iota
	KitChanged
	ColorChanged
	UndoDepthChanged
	RedoDepthChanged
)

// String returns a short label for k.
func (k EventKind) String() string {
	switch k {
	case ItemChanged:
		return "item_changed"
	case KitChanged:
		return "kit_changed"
	case ColorChanged:
		return "color_changed"
	case UndoDepthChanged:
		return "undo_depth_changed"
	case RedoDepthChanged:
		return "redo_depth_changed"
	default:
		return "unknown"
	}
}

// Event is a notification about saved state or history depth.
type Event struct {
	Kind EventKind
	// Slot is set for ItemChanged and KitChanged.
	Slot appearance.Slot
	// ColorType is set for ColorChanged.
	ColorType appearance.ColorType
	// ID is the new item, kit, or color id. Removed is true when the entry was
	// cleared instead, in which case ID is the id that was removed.
	ID      int
	Removed bool
	// Depth is set for UndoDepthChanged and RedoDepthChanged.
	Depth int
}

const defaultFeedBuffer = 64

// Feed fans events out to subscribers over buffered channels. Publishing never
// blocks: an event for a subscriber whose buffer is full is dropped.
//
// All methods are safe for concurrent use.
type Feed struct {
	mu     sync.Mutex
	subs   []chan Event
	closed bool
	logger *zap.Logger
}

// NewFeed creates a Feed with no subscribers.
//
// Precondition: logger must be non-nil.
func NewFeed(logger *zap.Logger) *Feed {
	return &Feed{logger: logger}
}

// Subscribe returns a channel receiving every event published from now on.
// A non-positive buffer uses the default of 64.
//
// Postcondition: the channel is closed when the Feed is closed.
func (f *Feed) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = defaultFeedBuffer
	}
	ch := make(chan Event, buffer)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		close(ch)
		return ch
	}
	f.subs = append(f.subs, ch)
	return ch
}

// Publish delivers e to every subscriber with room in its buffer.
func (f *Feed) Publish(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	for i, ch := range f.subs {
		select {
		case ch <- e:
		default:
			f.logger.Warn("swap: event dropped, subscriber buffer full",
				zap.Int("subscriber", i),
				zap.Stringer("kind", e.Kind),
			)
		}
	}
}

// Close closes every subscriber channel.
//
// Postcondition: further Publish calls are ignored.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for _, ch := range f.subs {
		close(ch)
	}
	f.subs = nil
}
