package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifecanvas/src/universe"
)

//ConsoleOut is the headless viewer, it prints the configuration and the simulation progress
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
	lastGen   int
	finished  bool
}

//NewConsoleOut creates the viewer printing a progress line every `every` generations
func NewConsoleOut(w io.Writer, colors bool, every int) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: every}
}

//DrawCell does nothing, the field is not printed
func (c *ConsoleOut) DrawCell(int, int, bool) {}

func (c *ConsoleOut) Refresh(st universe.Status) {
	switch st.RunningMode {
	case universe.RunningStateFinished:
		if c.finished {
			return
		}
		c.finished = true
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      time.Since(c.startTime).Round(time.Millisecond),
			"Live cells":      st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	case universe.RunningStateRunning:
		c.finished = false
		if st.Generation != c.lastGen && st.Generation%c.every == 0 {
			_, _ = fmt.Fprintf(c.w, "  %s %v, live cells: %v\n", c.au.Cyan("Generations done:"), st.Generation, st.LiveCells)
		}
	default:
		c.finished = false
	}
	c.lastGen = st.Generation
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension": fmt.Sprintf("%v x %v", o.Columns, o.Rows),
		"Interval":  o.Interval(),
		"Max steps": o.MaxSteps,
		"Engine":    o.Engine,
	})
}

func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
