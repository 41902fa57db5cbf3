package universe

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/pkg/errors"
)

const (
	EnginePending  = "pending"
	EngineBuffered = "buffered"
)

//engines select how a generation is computed, both keep the old generation intact until it is fully evaluated
var engines = map[string]func(g *Grid) func() bool{
	EnginePending: func(g *Grid) func() bool {
		return g.pendingGeneration
	},
	EngineBuffered: func(g *Grid) func() bool {
		g.buffer = make([]State, g.columns*g.rows)
		return g.bufferedGeneration
	},
}

//Engines returns the sorted names of the known engines
func Engines() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Grid is the toroidal field of cells
//it's not safe for concurrent use, all calls (including the scheduler ticks) have to be serialized by the caller
type Grid struct {
	columns   int
	rows      int
	cells     [][]Cell //[col][row]
	interval  time.Duration
	sink      Renderer
	scheduler Scheduler
	rng       *rand.Rand
	running   bool
	task      TaskID
	status    Status

	nextGeneration func() (changed bool)
	buffer         []State
}

//NewGrid creates the grid with all cells dead
func NewGrid(o Options, sink Renderer, scheduler Scheduler) (*Grid, error) {
	if err := o.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewGrid] invalid options")
	}
	if sink == nil {
		return nil, errors.New("[NewGrid] render sink is required")
	}
	if scheduler == nil {
		return nil, errors.New("[NewGrid] scheduler is required")
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Grid{
		columns:   o.Columns,
		rows:      o.Rows,
		cells:     createCells(o.Columns, o.Rows),
		interval:  o.Interval(),
		sink:      sink,
		scheduler: scheduler,
		rng:       rand.New(rand.NewPCG(uint64(seed), 0)),
	}
	g.nextGeneration = engines[o.Engine](g)
	return g, nil
}

func (g *Grid) Columns() int {
	return g.columns
}

func (g *Grid) Rows() int {
	return g.rows
}

//IsAlive returns the state of the cell, false outside the grid
func (g *Grid) IsAlive(col int, row int) bool {
	if !g.inside(col, row) {
		return false
	}
	return g.cells[col][row].IsAlive()
}

func (g *Grid) Running() bool {
	return g.running
}

//Status returns the counters of the last generation and the running mode
func (g *Grid) Status() Status {
	st := g.status
	st.RunningMode = RunningStateStopped
	if g.running {
		st.RunningMode = RunningStateRunning
	}
	return st
}

//NeighborPositions returns the positions of the 8 neighbours wrapping around the edges
func (g *Grid) NeighborPositions(col int, row int) [NeighborCount]Point {
	left := (col - 1 + g.columns) % g.columns
	right := (col + 1) % g.columns
	up := (row - 1 + g.rows) % g.rows
	down := (row + 1) % g.rows
	return [NeighborCount]Point{
		{left, up}, {left, row}, {left, down},
		{col, up}, {col, down},
		{right, up}, {right, row}, {right, down},
	}
}

//Neighbors returns the 8 neighbour cells of the cell at col, row
func (g *Grid) Neighbors(col int, row int) (n [NeighborCount]*Cell) {
	for i, p := range g.NeighborPositions(col, row) {
		n[i] = &g.cells[p.Col][p.Row]
	}
	return
}

//InitializeCellStates stops the simulation and settles every cell with random state
func (g *Grid) InitializeCellStates() {
	g.Stop()
	g.walkCells(func(col int, row int, c *Cell) {
		c.InitializeState(g.rng)
	})
	g.resetCounters()
	g.redraw()
}

//KillCells kills all cells, the running state is kept
func (g *Grid) KillCells() {
	g.walkCells(func(col int, row int, c *Cell) {
		c.Die()
	})
	g.redraw()
}

//Clear stops the simulation and kills all cells
func (g *Grid) Clear() {
	g.Stop()
	g.resetCounters()
	g.KillCells()
}

//Settle makes the cells at the listed positions alive, positions are wrapped around the edges
func (g *Grid) Settle(points []Point) {
	for _, p := range points {
		col := ((p.Col % g.columns) + g.columns) % g.columns
		row := ((p.Row % g.rows) + g.rows) % g.rows
		g.cells[col][row].Rise()
	}
	g.redraw()
}

//InverseCell inverses the cell state at col, row; positions outside the grid are ignored
func (g *Grid) InverseCell(col int, row int) {
	if !g.inside(col, row) {
		return
	}
	c := &g.cells[col][row]
	if c.IsAlive() {
		c.Die()
	} else {
		c.Rise()
	}
	g.redraw()
}

//Step calculates one generation for the entire grid and redraws it
//it does not change the running state
func (g *Grid) Step() {
	start := time.Now()
	g.status.Changed = g.nextGeneration()
	g.status.Generation++
	g.status.IterationTime = time.Since(start)
	g.redraw()
}

//Play starts stepping on every interval, does nothing if already running
func (g *Grid) Play() {
	if g.running {
		return
	}
	g.task = g.scheduler.Schedule(g.interval, g.Step)
	g.running = true
}

//Stop cancels the stepping, does nothing if not running
func (g *Grid) Stop() {
	if !g.running {
		return
	}
	g.scheduler.Cancel(g.task)
	g.task = 0
	g.running = false
}

//Render draws every cell to the renderer column by column and returns the count of live cells
func (g *Grid) Render(r Renderer) (liveCells int) {
	g.walkCells(func(col int, row int, c *Cell) {
		alive := c.IsAlive()
		if alive {
			liveCells++
		}
		r.DrawCell(col, row, alive)
	})
	return
}

//pendingGeneration computes the next state of every cell first, then commits all of them
func (g *Grid) pendingGeneration() (changed bool) {
	g.walkCells(func(col int, row int, c *Cell) {
		c.ComputeNextState(g.neighborStates(col, row))
	})
	g.walkCells(func(col int, row int, c *Cell) {
		prev := c.state
		c.Commit()
		changed = changed || prev != c.state
	})
	return
}

//bufferedGeneration calculates the next generation to the separate buffer and then copies it to the cells
func (g *Grid) bufferedGeneration() (changed bool) {
	g.walkCells(func(col int, row int, c *Cell) {
		alive := 0
		for _, s := range g.neighborStates(col, row) {
			if s == Alive {
				alive++
			}
		}
		g.buffer[col*g.rows+row] = NextState(c.state, alive)
	})
	g.walkCells(func(col int, row int, c *Cell) {
		next := g.buffer[col*g.rows+row]
		changed = changed || next != c.state
		if next == Alive {
			c.Rise()
		} else {
			c.Die()
		}
	})
	return
}

func (g *Grid) neighborStates(col int, row int) (s [NeighborCount]State) {
	for i, p := range g.NeighborPositions(col, row) {
		s[i] = g.cells[p.Col][p.Row].state
	}
	return
}

func (g *Grid) redraw() {
	g.status.LiveCells = g.Render(g.sink)
	if f, ok := g.sink.(Flusher); ok {
		f.Flush()
	}
}

func (g *Grid) resetCounters() {
	g.status.Generation = 0
	g.status.Changed = false
	g.status.IterationTime = 0
}

func (g *Grid) inside(col int, row int) bool {
	return col >= 0 && row >= 0 && col < g.columns && row < g.rows
}

//walkCells walk the entire grid and calls the cb function for each cell
func (g *Grid) walkCells(cb func(col int, row int, c *Cell)) {
	for col := range g.cells {
		for row := range g.cells[col] {
			cb(col, row, &g.cells[col][row])
		}
	}
}

//createCells allocates the cells in one block, every column is a slice of it
func createCells(columns int, rows int) [][]Cell {
	cells := make([][]Cell, columns)
	b := make([]Cell, columns*rows)
	for i := range cells {
		start := rows * i
		cells[i] = b[start : start+rows : start+rows]
	}
	return cells
}
