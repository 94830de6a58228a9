// ABOUTME: Bookkeeping of live outputs per backend
// ABOUTME: Lets Backend.Close stop outputs whose owners never stopped them
package output

import (
	"errors"
	"sync"
)

type tracker struct {
	mu      sync.Mutex
	outputs map[Output]struct{}
}

func (t *tracker) add(o Output) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.outputs == nil {
		t.outputs = make(map[Output]struct{})
	}
	t.outputs[o] = struct{}{}
}

func (t *tracker) remove(o Output) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.outputs, o)
}

func (t *tracker) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.outputs)
}

// stopAll stops every tracked output; Stop implementations call remove
func (t *tracker) stopAll() error {
	t.mu.Lock()
	outputs := make([]Output, 0, len(t.outputs))
	for o := range t.outputs {
		outputs = append(outputs, o)
	}
	t.mu.Unlock()

	var errs []error
	for _, o := range outputs {
		if err := o.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
