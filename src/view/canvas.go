//go:build ebiten

package view

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pkg/errors"

	"lifecanvas/src/universe"
)

//Canvas is the window viewer, every cell is a CellWidth x CellHeight rectangle
type Canvas struct {
	u     universe.Universe
	o     universe.Options
	frame *pixelFrame //drawn on the universe loop goroutine
	img   *ebiten.Image

	ready struct {
		sync.Mutex
		pix    []byte
		status universe.Status
	}
}

//NewCanvas creates the canvas viewer, the window is opened by Start
func NewCanvas() (*Canvas, error) {
	return &Canvas{}, nil
}

func (c *Canvas) Register(u universe.Universe) {
	c.u = u
	c.o = u.Options()
	c.frame = newPixelFrame(c.o.Columns, c.o.Rows, color.Black, color.White)
	c.ready.pix = append([]byte(nil), c.frame.pix...)
}

func (c *Canvas) DrawCell(col int, row int, alive bool) {
	c.frame.DrawCell(col, row, alive)
}

func (c *Canvas) Refresh(st universe.Status) {
	c.ready.Lock()
	copy(c.ready.pix, c.frame.pix)
	c.ready.status = st
	c.ready.Unlock()
}

//Start opens the window and blocks until it is closed
func (c *Canvas) Start() error {
	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetWindowSize(c.o.Columns*c.o.CellWidth, c.o.Rows*c.o.CellHeight)
	if err := ebiten.RunGame(c); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[Canvas.Start] game loop failed")
	}
	return nil
}

//Update handles the keys and the mouse
func (c *Canvas) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		c.u.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		c.u.Initialize()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		c.u.Play()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		c.u.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		c.u.Step()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if col, row, ok := c.frame.cellAt(x, y, c.o.CellWidth, c.o.CellHeight); ok {
			c.u.InverseCell(col, row)
		}
	}
	return nil
}

func (c *Canvas) Draw(screen *ebiten.Image) {
	if c.img == nil {
		c.img = ebiten.NewImage(c.o.Columns, c.o.Rows)
	}
	c.ready.Lock()
	c.img.WritePixels(c.ready.pix)
	st := c.ready.status
	c.ready.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(c.o.CellWidth), float64(c.o.CellHeight))
	screen.DrawImage(c.img, op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("gen %d  live %d  %s", st.Generation, st.LiveCells, st.RunningMode))
}

func (c *Canvas) Layout(int, int) (int, int) {
	return c.o.Columns * c.o.CellWidth, c.o.Rows * c.o.CellHeight
}
