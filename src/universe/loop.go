package universe

import (
	"sync"
	"time"
)

/*
	Loop is the single logical thread of the universe
	all commands are executed one by one by the loop goroutine, so the grid needs no locks
	timer ticks are posted to the same loop and can't interleave with the user commands
*/
type Loop struct {
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//NewLoop starts the loop goroutine
func NewLoop() *Loop {
	l := &Loop{
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
	}
	go l.mainLoop()
	return l
}

//Post queues the command, returns false if the loop is closed
func (l *Loop) Post(cmd func()) bool {
	select {
	case <-l.closeCh:
		return false
	default:
	}
	select {
	case l.controlCh <- cmd:
		return true
	case <-l.closeCh:
		return false
	}
}

//Do queues the command and waits until it is executed
//must not be called from the loop goroutine
func (l *Loop) Do(cmd func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		cmd()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.closeCh:
		return false
	}
}

//Close stops the loop, queued commands are discarded
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.closeCh)
	})
}

//Done is closed when the loop is closed
func (l *Loop) Done() <-chan struct{} {
	return l.closeCh
}

//mainLoop waits for command and executes
func (l *Loop) mainLoop() {
	for {
		select {
		case cmd := <-l.controlCh:
			cmd()
		case <-l.closeCh:
			return
		}
	}
}

//LoopScheduler is the Scheduler posting ticks into a Loop
//Schedule and Cancel have to be called on the loop goroutine
type LoopScheduler struct {
	loop  *Loop
	next  TaskID
	tasks map[TaskID]*loopTask
}

type loopTask struct {
	quit      chan struct{}
	cancelled bool //only touched on the loop goroutine
}

func NewLoopScheduler(l *Loop) *LoopScheduler {
	return &LoopScheduler{loop: l, tasks: map[TaskID]*loopTask{}}
}

func (s *LoopScheduler) Schedule(interval time.Duration, fn func()) TaskID {
	s.next++
	t := &loopTask{quit: make(chan struct{})}
	s.tasks[s.next] = t
	go s.tick(t, interval, fn)
	return s.next
}

func (s *LoopScheduler) Cancel(id TaskID) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	t.cancelled = true
	close(t.quit)
}

//tick posts fn to the loop on every ticker event
//a tick already queued when the task is cancelled is dropped by the cancelled check
func (s *LoopScheduler) tick(t *loopTask, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.quit:
			return
		case <-s.loop.Done():
			return
		case <-ticker.C:
		}
		if !s.loop.Post(func() {
			if !t.cancelled {
				fn()
			}
		}) {
			return
		}
	}
}
