package universe

import (
	"sort"
	"strings"
	"testing"
)

type recorder struct {
	draws   int
	flushes int
	cells   map[Point]bool
}

func newRecorder() *recorder {
	return &recorder{cells: map[Point]bool{}}
}

func (r *recorder) DrawCell(col int, row int, alive bool) {
	r.draws++
	r.cells[Point{col, row}] = alive
}

func (r *recorder) Flush() {
	r.flushes++
}

func newTestGrid(t testing.TB, columns int, rows int, engine string) (*Grid, *recorder, *ManualScheduler) {
	o := DefaultOptions
	o.Columns = columns
	o.Rows = rows
	o.Engine = engine
	o.Seed = 42
	r := newRecorder()
	s := NewManualScheduler()
	g, err := NewGrid(o, r, s)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g, r, s
}

func liveSet(g *Grid) map[Point]bool {
	live := map[Point]bool{}
	for col := 0; col < g.Columns(); col++ {
		for row := 0; row < g.Rows(); row++ {
			if g.IsAlive(col, row) {
				live[Point{col, row}] = true
			}
		}
	}
	return live
}

func expectLive(t *testing.T, g *Grid, want []Point) {
	t.Helper()
	live := liveSet(g)
	if len(live) != len(want) {
		t.Fatalf("live cells %v, expected %v", live, want)
	}
	for _, p := range want {
		if !live[p] {
			t.Fatalf("cell %v is dead, live cells %v", p, live)
		}
	}
}

func TestNewGridRejectsInvalidArguments(t *testing.T) {
	r := newRecorder()
	s := NewManualScheduler()
	for name, o := range map[string]Options{
		"zero columns":  {Columns: 0, Rows: 5, StepIntervalMs: 1, CellWidth: 1, CellHeight: 1, Engine: EnginePending},
		"negative rows": {Columns: 5, Rows: -1, StepIntervalMs: 1, CellWidth: 1, CellHeight: 1, Engine: EnginePending},
		"engine":        {Columns: 5, Rows: 5, StepIntervalMs: 1, CellWidth: 1, CellHeight: 1, Engine: "quantum"},
	} {
		if _, err := NewGrid(o, r, s); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), "[NewGrid]") {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
	}
	if _, err := NewGrid(DefaultOptions, nil, s); err == nil {
		t.Fatalf("nil sink: expected error")
	}
	if _, err := NewGrid(DefaultOptions, r, nil); err == nil {
		t.Fatalf("nil scheduler: expected error")
	}
}

func TestNewGridIsDead(t *testing.T) {
	g, r, _ := newTestGrid(t, 7, 5, EnginePending)
	if len(liveSet(g)) != 0 {
		t.Fatalf("new grid must be dead")
	}
	if g.Running() {
		t.Fatalf("new grid must be stopped")
	}
	if r.draws != 0 {
		t.Fatalf("construction must not draw, got %d draws", r.draws)
	}
}

func TestNeighborPositions(t *testing.T) {
	const columns, rows = 5, 4
	g, _, _ := newTestGrid(t, columns, rows, EnginePending)
	wrapDist := func(a, b, n int) int {
		d := (a - b + n) % n
		if n-d < d {
			d = n - d
		}
		return d
	}
	for col := 0; col < columns; col++ {
		for row := 0; row < rows; row++ {
			seen := map[Point]bool{}
			for _, p := range g.NeighborPositions(col, row) {
				if p.Col < 0 || p.Col >= columns || p.Row < 0 || p.Row >= rows {
					t.Fatalf("(%d,%d): neighbour %v outside the grid", col, row, p)
				}
				if p == (Point{col, row}) {
					t.Fatalf("(%d,%d): the cell is its own neighbour", col, row)
				}
				if wrapDist(p.Col, col, columns) > 1 || wrapDist(p.Row, row, rows) > 1 {
					t.Fatalf("(%d,%d): neighbour %v is not adjacent", col, row, p)
				}
				seen[p] = true
			}
			if len(seen) != NeighborCount {
				t.Fatalf("(%d,%d): %d distinct neighbours, expected %d", col, row, len(seen), NeighborCount)
			}
		}
	}
}

func TestNeighborPositionsCorner(t *testing.T) {
	g, _, _ := newTestGrid(t, 5, 4, EnginePending)
	got := g.NeighborPositions(0, 0)
	want := [NeighborCount]Point{
		{4, 3}, {4, 0}, {4, 1},
		{0, 3}, {0, 1},
		{1, 3}, {1, 0}, {1, 1},
	}
	if got != want {
		t.Fatalf("NeighborPositions(0,0) = %v, expected %v", got, want)
	}
	last := g.NeighborPositions(4, 3)
	if last[7] != (Point{0, 0}) {
		t.Fatalf("NeighborPositions(4,3) must wrap to (0,0), got %v", last)
	}
}

func TestNeighborsAreGridCells(t *testing.T) {
	g, _, _ := newTestGrid(t, 3, 3, EnginePending)
	g.Settle([]Point{{2, 2}})
	alive := 0
	for _, c := range g.Neighbors(0, 0) {
		if c.IsAlive() {
			alive++
		}
	}
	if alive != 1 {
		t.Fatalf("expected 1 live neighbour of (0,0) through the corner, got %d", alive)
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	for _, e := range Engines() {
		g, _, _ := newTestGrid(t, 10, 8, e)
		for i := 0; i < 10; i++ {
			g.Step()
			if len(liveSet(g)) != 0 {
				t.Fatalf("%s: dead grid got alive at step %d", e, i)
			}
			if g.Status().Changed {
				t.Fatalf("%s: dead grid reported a change", e)
			}
		}
	}
}

func TestBlockIsStable(t *testing.T) {
	block := []Point{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	for _, e := range Engines() {
		g, _, _ := newTestGrid(t, 6, 6, e)
		g.Settle(block)
		g.Step()
		expectLive(t, g, block)
		if g.Status().Changed {
			t.Fatalf("%s: block reported a change", e)
		}
	}
}

func TestBlinkerOscillates(t *testing.T) {
	vertical := []Point{{2, 1}, {2, 2}, {2, 3}}
	horizontal := []Point{{1, 2}, {2, 2}, {3, 2}}
	for _, e := range Engines() {
		g, _, _ := newTestGrid(t, 5, 5, e)
		g.Settle(vertical)
		g.Step()
		expectLive(t, g, horizontal)
		g.Step()
		expectLive(t, g, vertical)
		if st := g.Status(); st.Generation != 2 || st.LiveCells != 3 || !st.Changed {
			t.Fatalf("%s: unexpected status %+v", e, st)
		}
	}
}

func TestGliderWrapsAround(t *testing.T) {
	glider := []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	for _, e := range Engines() {
		g, _, _ := newTestGrid(t, 8, 8, e)
		g.Settle(glider)
		for i := 0; i < 4; i++ {
			g.Step()
		}
		moved := make([]Point, 0, len(glider))
		for _, p := range glider {
			moved = append(moved, Point{p.Col + 1, p.Row + 1})
		}
		expectLive(t, g, moved)
		for i := 4; i < 32; i++ {
			g.Step()
		}
		expectLive(t, g, glider)
	}
}

func TestEnginesAgree(t *testing.T) {
	pending, _, _ := newTestGrid(t, 16, 12, EnginePending)
	buffered, _, _ := newTestGrid(t, 16, 12, EngineBuffered)
	pending.InitializeCellStates()
	buffered.InitializeCellStates()
	for i := 0; i < 30; i++ {
		a, b := liveSet(pending), liveSet(buffered)
		if len(a) != len(b) {
			t.Fatalf("generation %d: %d live cells vs %d", i, len(a), len(b))
		}
		for p := range a {
			if !b[p] {
				t.Fatalf("generation %d: cell %v differs", i, p)
			}
		}
		pending.Step()
		buffered.Step()
	}
}

func TestSeededInitializeIsReproducible(t *testing.T) {
	a, _, _ := newTestGrid(t, 20, 20, EnginePending)
	b, _, _ := newTestGrid(t, 20, 20, EnginePending)
	a.InitializeCellStates()
	b.InitializeCellStates()
	la, lb := liveSet(a), liveSet(b)
	if len(la) == 0 || len(la) == 400 {
		t.Fatalf("random initialization produced %d live cells", len(la))
	}
	if len(la) != len(lb) {
		t.Fatalf("same seed produced %d and %d live cells", len(la), len(lb))
	}
	for p := range la {
		if !lb[p] {
			t.Fatalf("same seed differs at %v", p)
		}
	}
}

func TestRedrawDrawsEveryCellOnce(t *testing.T) {
	g, r, _ := newTestGrid(t, 6, 4, EnginePending)
	ops := []struct {
		name string
		fn   func()
	}{
		{"InitializeCellStates", g.InitializeCellStates},
		{"Step", g.Step},
		{"KillCells", g.KillCells},
		{"Clear", g.Clear},
	}
	for _, op := range ops {
		r.draws, r.flushes = 0, 0
		op.fn()
		if r.draws != 24 || r.flushes != 1 {
			t.Fatalf("%s: %d draws and %d flushes, expected 24 and 1", op.name, r.draws, r.flushes)
		}
		if len(r.cells) != 24 {
			t.Fatalf("%s: %d distinct cells drawn", op.name, len(r.cells))
		}
	}
}

func TestRenderReportsCells(t *testing.T) {
	g, r, _ := newTestGrid(t, 4, 4, EnginePending)
	g.Settle([]Point{{0, 1}, {3, 3}})
	if !r.cells[Point{0, 1}] || !r.cells[Point{3, 3}] || r.cells[Point{1, 1}] {
		t.Fatalf("unexpected drawn cells %v", r.cells)
	}
	other := newRecorder()
	if live := g.Render(other); live != 2 || other.draws != 16 || other.flushes != 0 {
		t.Fatalf("Render returned %d live, %d draws, %d flushes", live, other.draws, other.flushes)
	}
	if g.Status().LiveCells != 2 {
		t.Fatalf("status live cells %d, expected 2", g.Status().LiveCells)
	}
}

func TestPlayStop(t *testing.T) {
	g, _, s := newTestGrid(t, 5, 5, EnginePending)
	g.Settle([]Point{{2, 1}, {2, 2}, {2, 3}})

	g.Play()
	g.Play()
	if !g.Running() || s.Active() != 1 {
		t.Fatalf("Play twice: running=%v tasks=%d, expected one task", g.Running(), s.Active())
	}
	if g.Status().RunningMode != RunningStateRunning {
		t.Fatalf("status mode %v, expected running", g.Status().RunningMode)
	}
	s.Tick()
	s.Tick()
	if gen := g.Status().Generation; gen != 2 {
		t.Fatalf("generation %d after two ticks, expected 2", gen)
	}

	g.Stop()
	if g.Running() || s.Active() != 0 {
		t.Fatalf("Stop: running=%v tasks=%d", g.Running(), s.Active())
	}
	s.Tick()
	if gen := g.Status().Generation; gen != 2 {
		t.Fatalf("step happened after Stop, generation %d", gen)
	}
	g.Stop()
	if g.Running() {
		t.Fatalf("second Stop changed the state")
	}
}

func TestStepKeepsRunningState(t *testing.T) {
	g, _, s := newTestGrid(t, 5, 5, EnginePending)
	g.Step()
	if g.Running() {
		t.Fatalf("manual step started the grid")
	}
	g.Play()
	g.Step()
	if !g.Running() || s.Active() != 1 {
		t.Fatalf("manual step stopped the grid")
	}
}

func TestClearStopsAndKills(t *testing.T) {
	g, r, s := newTestGrid(t, 8, 8, EnginePending)
	g.InitializeCellStates()
	g.Play()
	s.Tick()
	r.flushes = 0

	g.Clear()
	if g.Running() || s.Active() != 0 {
		t.Fatalf("Clear left the grid running")
	}
	if len(liveSet(g)) != 0 {
		t.Fatalf("Clear left live cells")
	}
	if r.flushes != 1 {
		t.Fatalf("Clear redrew %d times, expected once", r.flushes)
	}
	if st := g.Status(); st.Generation != 0 || st.LiveCells != 0 {
		t.Fatalf("unexpected status after Clear %+v", st)
	}
	s.Tick()
	if g.Status().Generation != 0 {
		t.Fatalf("tick after Clear stepped the grid")
	}
}

func TestInitializeStops(t *testing.T) {
	g, _, s := newTestGrid(t, 8, 8, EnginePending)
	g.Play()
	g.InitializeCellStates()
	if g.Running() || s.Active() != 0 {
		t.Fatalf("InitializeCellStates left the grid running")
	}
}

func TestKillCellsKeepsRunning(t *testing.T) {
	g, _, s := newTestGrid(t, 8, 8, EnginePending)
	g.InitializeCellStates()
	g.Play()
	g.KillCells()
	if !g.Running() || s.Active() != 1 {
		t.Fatalf("KillCells changed the running state")
	}
	if len(liveSet(g)) != 0 {
		t.Fatalf("KillCells left live cells")
	}
}

func TestSettleWrapsAndInverseCell(t *testing.T) {
	g, r, _ := newTestGrid(t, 4, 3, EnginePending)
	g.Settle([]Point{{-1, -1}, {4, 3}})
	expectLive(t, g, []Point{{3, 2}, {0, 0}})

	g.InverseCell(3, 2)
	expectLive(t, g, []Point{{0, 0}})
	g.InverseCell(1, 1)
	expectLive(t, g, []Point{{0, 0}, {1, 1}})

	r.flushes = 0
	g.InverseCell(4, 0)
	g.InverseCell(0, -1)
	if r.flushes != 0 {
		t.Fatalf("InverseCell outside the grid redrew the field")
	}
}

func TestEngines(t *testing.T) {
	names := Engines()
	if !sort.StringsAreSorted(names) || len(names) != 2 {
		t.Fatalf("unexpected engines %v", names)
	}
}

func benchmarkStep(b *testing.B, engine string) {
	g, _, _ := newTestGrid(b, 200, 200, engine)
	g.InitializeCellStates()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step()
	}
}

func Benchmark_Step(b *testing.B) {
	for _, e := range Engines() {
		b.Run(e, func(b *testing.B) {
			benchmarkStep(b, e)
		})
	}
}
