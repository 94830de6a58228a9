// ABOUTME: Outputs driven by a ticker instead of a hardware callback
// ABOUTME: Shared by the wav and null backends; Speed runs the clock faster than realtime
package output

import (
	"sync"
	"time"
)

// clockedOutput renders one device period per tick and hands it to sink
type clockedOutput struct {
	*props
	render  *renderer
	period  time.Duration
	samples []int32
	sink    func(samples []int32) error
	closer  func() error
	onStop  func()

	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	done      chan struct{}
	started   bool
}

func newClockedOutput(p *props, r *renderer, cfg Config, sink func([]int32) error, closer func() error) *clockedOutput {
	return &clockedOutput{
		props:   p,
		render:  r,
		period:  time.Duration(float64(cfg.period()) / cfg.Speed),
		samples: make([]int32, cfg.BufferFrames*cfg.Channels),
		sink:    sink,
		closer:  closer,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (c *clockedOutput) Start() error {
	c.startOnce.Do(func() {
		c.started = true
		go c.loop()
	})
	return nil
}

func (c *clockedOutput) loop() {
	defer close(c.done)

	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	for {
		select {
		case <-c.quit:
			return
		case <-ticker.C:
			c.render.Render(c.samples)
			if err := c.sink(c.samples); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

// Stop waits for the clock goroutine before closing the sink
func (c *clockedOutput) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.quit)
		c.startOnce.Do(func() {})
		if c.started {
			<-c.done
		}
		if c.closer != nil {
			err = c.closer()
		}
		if c.onStop != nil {
			c.onStop()
		}
	})
	return err
}
