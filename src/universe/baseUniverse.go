package universe

import (
	"sync"

	"github.com/pkg/errors"
)

var _ Universe = (*BaseUniverse)(nil)

//BaseUniverse is the universe's engine, implements Universe interface
//the grid is owned by the loop goroutine, every command and every timer tick is executed there
type BaseUniverse struct {
	options Options
	grid    *Grid
	loop    *Loop
	state   struct {
		Status
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	finished  bool
}

//NewBaseUniverse creates the BaseUniverse instance and starts its loop
//stateCh is optional, when given it receives the status after every command and must be read
func NewBaseUniverse(o *Options, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		o = &DefaultOptions
	}
	u := &BaseUniverse{
		options:   *o,
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	for _, tmpl := range DefaultTemplates {
		u.templates[tmpl.Name] = tmpl
	}

	loop := NewLoop()
	grid, err := NewGrid(u.options, fanout{u}, NewLoopScheduler(loop))
	if err != nil {
		loop.Close()
		return nil, errors.Wrap(err, "[NewBaseUniverse] failed to create grid")
	}
	u.loop = loop
	u.grid = grid
	u.state.Status = grid.Status()
	return u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.loop.Do(func() {
		u.templates[tmpl.Name] = tmpl
	})
}

//SettleTemplate populates the universe with the seeding template, unknown names are ignored
func (u *BaseUniverse) SettleTemplate(name string) {
	u.loop.Post(func() {
		tmpl, ok := u.templates[name]
		if !ok {
			u.publish()
			return
		}
		u.grid.Settle(tmpl.Cells)
	})
}

//Initialize stops the simulation and populates the universe with random data
func (u *BaseUniverse) Initialize() {
	u.loop.Post(func() {
		u.finished = false
		u.grid.InitializeCellStates()
	})
}

//InverseCell inverses the cell state at point col, row
func (u *BaseUniverse) InverseCell(col int, row int) {
	u.loop.Post(func() {
		if col < 0 || row < 0 || col >= u.grid.Columns() || row >= u.grid.Rows() {
			u.publish()
			return
		}
		u.grid.InverseCell(col, row)
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
//the viewer gets the current field right away
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.loop.Do(func() {
		u.views = append(u.views, v)
		u.grid.Render(v)
		v.Refresh(u.status())
	})
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Play starts the universe simulation, returns immediately
func (u *BaseUniverse) Play() {
	u.loop.Post(func() {
		u.finished = false
		u.grid.Play()
		u.publish()
	})
}

//Stop stops the universe simulation, returns immediately
func (u *BaseUniverse) Stop() {
	u.loop.Post(func() {
		u.grid.Stop()
		u.publish()
	})
}

//Step does one simulation step, returns immediately
func (u *BaseUniverse) Step() {
	u.loop.Post(u.grid.Step)
}

//Clear stops the simulation and kills all cells, returns immediately
func (u *BaseUniverse) Clear() {
	u.loop.Post(func() {
		u.finished = false
		u.grid.Clear()
	})
}

//Close stops the main loop, returns immediately
//queued commands are discarded, the timer goroutines exit with the loop
func (u *BaseUniverse) Close() {
	u.loop.Close()
}

//flush is called by the grid after every redraw
//checks the boundary conditions of the running simulation and publishes the status
func (u *BaseUniverse) flush() {
	st := u.grid.Status()
	if st.RunningMode == RunningStateRunning {
		maxSteps := u.options.MaxSteps
		if (maxSteps != 0 && st.Generation >= maxSteps) || (u.options.StopWhenStable && !st.Changed) {
			u.grid.Stop()
			u.finished = true
		}
	}
	u.publish()
}

//publish refreshes all registered viewers and writes the status to the stateCh
func (u *BaseUniverse) publish() {
	st := u.status()
	u.state.Lock()
	u.state.Status = st
	u.state.Unlock()
	for _, v := range u.views {
		v.Refresh(st)
	}
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.loop.Done():
		}
	}
}

func (u *BaseUniverse) status() Status {
	st := u.grid.Status()
	if u.finished && st.RunningMode == RunningStateStopped {
		st.RunningMode = RunningStateFinished
	}
	return st
}

//fanout is the grid's render sink, it passes every cell to the registered viewers
type fanout struct {
	u *BaseUniverse
}

func (f fanout) DrawCell(col int, row int, alive bool) {
	for _, v := range f.u.views {
		v.DrawCell(col, row, alive)
	}
}

func (f fanout) Flush() {
	f.u.flush()
}
