package registry

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// Event identifies a lifecycle point hooks can attach to.
type Event int

const (
	BeforeSuite Event = iota
	AfterSuite
	BeforeFeature
	AfterFeature
	BeforeScenario
	AfterScenario
	BeforeStep
	AfterStep
)

func (e Event) String() string {
	switch e {
	case BeforeSuite:
		return "before suite"
	case AfterSuite:
		return "after suite"
	case BeforeFeature:
		return "before feature"
	case AfterFeature:
		return "after feature"
	case BeforeScenario:
		return "before scenario"
	case AfterScenario:
		return "after scenario"
	case BeforeStep:
		return "before step"
	case AfterStep:
		return "after step"
	default:
		return "unknown"
	}
}

// Hook is a lifecycle callback. node is the AST node the event fires
// for (nil for suite events). A non-nil error aborts the run and is
// propagated to the caller, never swallowed.
type Hook func(node any) error

// Callback is one registered hook.
type Callback struct {
	Event    Event
	Priority PriorityClass
	Hook     Hook
	Source   string // file:line of the registration call

	seq int
}

// CallbackRegistry stores lifecycle hooks. Unlike step definitions,
// every hook registered for an event fires.
type CallbackRegistry struct {
	mu      sync.RWMutex
	entries []*Callback
	seq     int
}

// NewCallbackRegistry returns an empty callback registry.
func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{}
}

// Register adds a hook for an event at the given priority class.
func (r *CallbackRegistry) Register(event Event, class PriorityClass, h Hook) *Callback {
	source := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		source = fmt.Sprintf("%s:%d", file, line)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cb := &Callback{
		Event:    event,
		Priority: class,
		Hook:     h,
		Source:   source,
		seq:      r.seq,
	}
	r.seq++
	r.entries = append(r.entries, cb)
	return cb
}

// HooksFor returns the hooks registered for the event, ordered by
// priority class (highest first), then declaration order.
func (r *CallbackRegistry) HooksFor(event Event) []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Callback
	for _, cb := range r.entries {
		if cb.Event == event {
			matched = append(matched, cb)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	hooks := make([]Hook, len(matched))
	for i, cb := range matched {
		hooks[i] = cb.Hook
	}
	return hooks
}

// Clear removes hooks at or below the given class, with the same scope
// semantics as StepRegistry.Clear.
func (r *CallbackRegistry) Clear(class PriorityClass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, cb := range r.entries {
		if cb.Priority > class {
			kept = append(kept, cb)
		}
	}
	r.entries = kept
}

// ClearAll removes every hook.
func (r *CallbackRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// Len returns the number of registered hooks.
func (r *CallbackRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
