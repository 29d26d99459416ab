// Package controller holds the per-screen state owners for the taxi
// client: estimate, confirm, and history.
//
// Each controller is a single-writer actor. Every state mutation
// (user commands, network completions, timer expirations, local store
// emissions) is a closure posted onto the controller's loop and
// executed by one goroutine, so no field is ever written from two
// places. Asynchronous work communicates back by posting its result;
// it never touches state directly.
package controller

import "time"

// loop serializes all state mutations of one controller.
type loop struct {
	cmds chan func()
	done chan struct{}
}

func newLoop() *loop {
	l := &loop{
		cmds: make(chan func(), 32),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *loop) run() {
	for {
		select {
		case fn := <-l.cmds:
			fn()
		case <-l.done:
			return
		}
	}
}

// post schedules fn on the loop. Posts after close are dropped.
func (l *loop) post(fn func()) {
	select {
	case <-l.done:
	case l.cmds <- fn:
	}
}

// after posts fn to the loop once d has elapsed.
func (l *loop) after(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.post(fn) })
}

func (l *loop) close() {
	close(l.done)
}
