package universe

import "time"

//Universe is the simulation as seen by the viewers and the command line
//all the commands return immediately, their result is delivered by the viewers refresh and the status channel
type Universe interface {
	Status() Status
	Options() Options
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string)
	Initialize()
	InverseCell(col int, row int)
	RegisterViewer(v Viewer)
	Play()
	Stop()
	Step()
	Clear()
	Close()
}

//Point is the cell position on the grid
type Point struct {
	Col int
	Row int
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	Changed       bool //the last generation differs from the previous one
	IterationTime time.Duration
}

//The universe running status at the concrete moment
type RunningState int

const (
	RunningStateStopped RunningState = iota
	RunningStateRunning
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateRunning:
		return "running"
	case RunningStateFinished:
		return "finished"
	default:
		return "stopped"
	}
}

//Renderer is the drawing sink, DrawCell is called for every cell on each redraw
type Renderer interface {
	DrawCell(col int, row int, alive bool)
}

//Flusher is implemented by renderers which need to know when the whole frame is drawn
type Flusher interface {
	Flush()
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
//DrawCell and Refresh are called on the universe loop goroutine
type Viewer interface {
	Renderer
	Refresh(st Status)
	Register(u Universe)
	Start() error
}
