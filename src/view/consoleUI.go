package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"lifecanvas/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
//the field is drawn one char per cell, the keys and the mouse control the universe
type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	frame *frame //drawn on the universe loop goroutine
	last  struct {
		sync.Mutex
		frame  *frame
		status universe.Status
	}

	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateStopped:  aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateRunning:  aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewConsoleUI creates the terminal gui, the terminal is taken until Start returns
func NewConsoleUI() (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to init terminal")
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'p', "P", "Play", t.cmdPlay, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'i', "I", "Initialize", t.cmdInitialize, ""},
		{gocui.MouseLeft, "MOUSE", "Inverse the cell", t.cmdMouseClick, "field"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	o := u.Options()
	t.frame = newFrame(o.Columns, o.Rows)
	t.last.frame = t.frame.clone()
}

//Start runs the gui main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[ConsoleUI.Start] gui main loop failed")
	}
	return nil
}

func (t *ConsoleUI) DrawCell(col int, row int, alive bool) {
	t.frame.DrawCell(col, row, alive)
}

//Refresh keeps the copy of the drawn frame and asks the gui to repaint
func (t *ConsoleUI) Refresh(st universe.Status) {
	t.last.Lock()
	t.last.frame = t.frame.clone()
	t.last.status = st
	t.last.Unlock()

	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) snapshot() (*frame, universe.Status) {
	t.last.Lock()
	defer t.last.Unlock()
	return t.last.frame, t.last.status
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("field")
	if e != nil {
		return
	}
	//the entire field is redrawing at once
	v.Clear()
	f, _ := t.snapshot()
	if f == nil {
		return
	}
	maxW, maxH := v.Size()
	cropMsg := aurora.Red("The field size is larger than the viewing area").BgBlack().String()
	_, _ = fmt.Fprint(v, f.render(maxW, maxH, t.liveFiller, t.deadFiller, cropMsg))
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	_, s := t.snapshot()
	if v, e := g.View("status"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
		_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
		_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
		_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	c := t.u.Options()
	if v, e := g.View("configuration"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Columns, c.Rows))
		_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval()))
		_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Engine))
		if c.MaxSteps > 0 {
			_, _ = fmt.Fprintln(v, t.renderProp("Max steps", "%v", c.MaxSteps))
		}
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(g)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(g)
	}

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
	}
	t.renderField(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdPlay(_ *gocui.View) error {
	t.u.Play()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdInitialize(_ *gocui.View) error {
	t.u.Initialize()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.u.InverseCell(cx, cy)
	return nil
}
