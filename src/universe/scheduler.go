package universe

import "time"

//TaskID identifies a repeating task, zero is never a valid task
type TaskID uint64

//Scheduler runs a function repeatedly with a fixed interval until the task is cancelled
//Cancel must guarantee that fn is not called again once it returns
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) TaskID
	Cancel(id TaskID)
}

//ManualScheduler is a Scheduler driven by explicit Tick calls instead of a clock
type ManualScheduler struct {
	next  TaskID
	tasks map[TaskID]func()
	order []TaskID
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: map[TaskID]func(){}}
}

func (s *ManualScheduler) Schedule(_ time.Duration, fn func()) TaskID {
	s.next++
	s.tasks[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *ManualScheduler) Cancel(id TaskID) {
	if _, ok := s.tasks[id]; !ok {
		return
	}
	delete(s.tasks, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

//Tick calls every active task once in scheduling order
func (s *ManualScheduler) Tick() {
	ids := append([]TaskID(nil), s.order...)
	for _, id := range ids {
		//a task may cancel another one (or itself) while ticking
		if fn, ok := s.tasks[id]; ok {
			fn()
		}
	}
}

//Active returns the number of scheduled tasks
func (s *ManualScheduler) Active() int {
	return len(s.tasks)
}
