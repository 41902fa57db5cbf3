package universe

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

//default options
const (
	DefColumns        = 80
	DefRows           = 80
	DefStepIntervalMs = 100
	DefCellWidth      = 5
	DefCellHeight     = 5
	DefEngine         = EnginePending
)

//Options represents the Universe's configurable options
type Options struct {
	Columns        int    `json:"columns"`
	Rows           int    `json:"rows"`
	StepIntervalMs int    `json:"step_interval_ms"`
	CellWidth      int    `json:"cell_width"`  //pixels per cell on the canvas view
	CellHeight     int    `json:"cell_height"` //pixels per cell on the canvas view
	MaxSteps       int    `json:"max_steps"`   //0 means unlimited
	StopWhenStable bool   `json:"stop_when_stable"`
	Seed           int64  `json:"seed"` //0 means seeded from the clock
	Engine         string `json:"engine"`
}

var DefaultOptions = Options{
	Columns:        DefColumns,
	Rows:           DefRows,
	StepIntervalMs: DefStepIntervalMs,
	CellWidth:      DefCellWidth,
	CellHeight:     DefCellHeight,
	Engine:         DefEngine,
}

//Interval returns the time between two automatic steps
func (o Options) Interval() time.Duration {
	return time.Duration(o.StepIntervalMs) * time.Millisecond
}

//Validate checks that the options describe a grid that can be built
func (o Options) Validate() error {
	if o.Columns <= 0 || o.Rows <= 0 {
		return errors.Errorf("[Validate] grid dimensions must be positive, got %dx%d", o.Columns, o.Rows)
	}
	if o.StepIntervalMs <= 0 {
		return errors.Errorf("[Validate] step interval must be positive, got %dms", o.StepIntervalMs)
	}
	if o.CellWidth <= 0 || o.CellHeight <= 0 {
		return errors.Errorf("[Validate] cell size must be positive, got %dx%d", o.CellWidth, o.CellHeight)
	}
	if o.MaxSteps < 0 {
		return errors.Errorf("[Validate] max steps must not be negative, got %d", o.MaxSteps)
	}
	if _, ok := engines[o.Engine]; !ok {
		return errors.Errorf("[Validate] unknown engine %q", o.Engine)
	}
	return nil
}

//LoadOptions loads the options from JSON file
//fields missing in the file keep their DefaultOptions values
func LoadOptions(filename string) (Options, error) {
	o := DefaultOptions

	data, err := os.ReadFile(filename)
	if err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &o); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to unmarshal data from file: %+v", filename)
	}

	return o, nil
}
