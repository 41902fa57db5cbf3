//go:build !ebiten

package view

import (
	"github.com/pkg/errors"

	"lifecanvas/src/universe"
)

//Canvas is a placeholder, the window viewer requires the 'ebiten' build tag
type Canvas struct{}

//NewCanvas always fails in the headless build
func NewCanvas() (*Canvas, error) {
	return nil, errors.New("[NewCanvas] the canvas view requires building with the 'ebiten' tag")
}

func (c *Canvas) Register(universe.Universe) {}

func (c *Canvas) DrawCell(int, int, bool) {}

func (c *Canvas) Refresh(universe.Status) {}

func (c *Canvas) Start() error {
	return errors.New("[Canvas.Start] the canvas view requires building with the 'ebiten' tag")
}
