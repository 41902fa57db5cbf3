package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lifecanvas/src/universe"
	"lifecanvas/src/view"
)

var (
	viewers = map[string]func() (universe.Viewer, error){
		"console": func() (universe.Viewer, error) {
			v, err := view.NewConsoleUI()
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		"canvas": func() (universe.Viewer, error) {
			v, err := view.NewCanvas()
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}

	errInterrupted = errors.New("interrupted")
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	template    string
	view        string
	config      string
}

func main() {
	eo, uo := initOptions()

	var err error
	if eo.interactive {
		err = runInteractive(eo, uo)
	} else {
		err = runHeadless(eo, uo)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	flagged := universe.DefaultOptions
	eo = &EnvOptions{view: "console", template: "sample"}

	templateNames := make([]string, 0, len(universe.DefaultTemplates))
	for _, t := range universe.DefaultTemplates {
		templateNames = append(templateNames, t.Name)
	}
	viewNames := make([]string, 0, len(viewers))
	for k := range viewers {
		viewNames = append(viewNames, k)
	}

	flaggy.SetName("lifecanvas")
	flaggy.SetDescription("Conway's Game of Life on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&flagged.Columns, "x", "columns", "Number of columns of the field")
	flaggy.Int(&flagged.Rows, "y", "rows", "Number of rows of the field")
	flaggy.Int(&flagged.StepIntervalMs, "i", "interval", "Simulation speed (interval between the steps) in milliseconds")
	flaggy.Int(&flagged.MaxSteps, "s", "maxSteps", "Stop the running simulation after maxSteps generations, 0 is unlimited")
	flaggy.Int(&flagged.CellWidth, "", "cellWidth", "Cell width in pixels (canvas view)")
	flaggy.Int(&flagged.CellHeight, "", "cellHeight", "Cell height in pixels (canvas view)")
	flaggy.Int64(&flagged.Seed, "", "seed", "Seed of the random initialization, 0 seeds from the clock")
	flaggy.Bool(&flagged.StopWhenStable, "", "stable", "Stop the running simulation when a generation doesn't change the field")
	flaggy.String(&flagged.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.Engines(), "|")+"]")
	flaggy.String(&eo.config, "c", "config", "JSON file with the options, flags override its values")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.String(&eo.view, "v", "view", "Interactive view ["+strings.Join(viewNames, "|")+"]")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.template, "t", "template", "Settle with the template ["+strings.Join(templateNames, "|")+"]")

	flaggy.Parse()

	o := flagged
	if eo.config != "" {
		fileOptions, err := universe.LoadOptions(eo.config)
		if err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
		o = overrideOptions(fileOptions, flagged, universe.DefaultOptions)
	}
	if err := o.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if _, ok := viewers[eo.view]; !ok {
		flaggy.ShowHelpAndExit("unknown view")
	}
	if !eo.randomData && !knownTemplate(eo.template) {
		flaggy.ShowHelpAndExit("unknown template")
	}

	return eo, &o
}

//overrideOptions returns base with every value of flagged which differs from the defaults
func overrideOptions(base universe.Options, flagged universe.Options, def universe.Options) universe.Options {
	if flagged.Columns != def.Columns {
		base.Columns = flagged.Columns
	}
	if flagged.Rows != def.Rows {
		base.Rows = flagged.Rows
	}
	if flagged.StepIntervalMs != def.StepIntervalMs {
		base.StepIntervalMs = flagged.StepIntervalMs
	}
	if flagged.CellWidth != def.CellWidth {
		base.CellWidth = flagged.CellWidth
	}
	if flagged.CellHeight != def.CellHeight {
		base.CellHeight = flagged.CellHeight
	}
	if flagged.MaxSteps != def.MaxSteps {
		base.MaxSteps = flagged.MaxSteps
	}
	if flagged.StopWhenStable != def.StopWhenStable {
		base.StopWhenStable = flagged.StopWhenStable
	}
	if flagged.Seed != def.Seed {
		base.Seed = flagged.Seed
	}
	if flagged.Engine != def.Engine {
		base.Engine = flagged.Engine
	}
	return base
}

func knownTemplate(name string) bool {
	for _, t := range universe.DefaultTemplates {
		if t.Name == name {
			return true
		}
	}
	return false
}

func settle(u universe.Universe, eo *EnvOptions) {
	if eo.randomData {
		u.Initialize()
	} else {
		u.SettleTemplate(eo.template)
	}
}

func runInteractive(eo *EnvOptions, uo *universe.Options) error {
	v, err := viewers[eo.view]()
	if err != nil {
		return err
	}
	u, err := universe.NewBaseUniverse(uo, nil)
	if err != nil {
		return err
	}
	defer u.Close()

	u.RegisterViewer(v)
	settle(u, eo)
	return v.Start()
}

//runHeadless plays the simulation printing the progress until it is finished or interrupted
func runHeadless(eo *EnvOptions, uo *universe.Options) error {
	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status
	u, err := universe.NewBaseUniverse(uo, stateCh)
	if err != nil {
		return err
	}
	defer u.Close()

	out := view.NewConsoleOut(os.Stdout, true, 10)
	u.RegisterViewer(out)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(context.Background())
	done := make(chan struct{})
	eg.Go(func() error {
		defer close(done)
		for {
			select {
			case st := <-stateCh:
				if st.RunningMode == universe.RunningStateFinished {
					return nil
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
	eg.Go(func() error {
		select {
		case <-sigCtx.Done():
			return errInterrupted
		case <-done:
			return nil
		}
	})

	settle(u, eo)
	_ = out.Start()
	u.Play()

	if err = eg.Wait(); err == errInterrupted {
		st := u.Status()
		fmt.Printf("\nInterrupted at generation %v, live cells: %v\n", st.Generation, st.LiveCells)
		return nil
	}
	return err
}
