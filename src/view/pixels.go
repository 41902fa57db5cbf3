package view

import "image/color"

//pixelFrame is the RGBA picture of the field, one pixel per cell
type pixelFrame struct {
	columns int
	rows    int
	pix     []byte
	on      [4]byte
	off     [4]byte
}

func newPixelFrame(columns int, rows int, on color.Color, off color.Color) *pixelFrame {
	p := &pixelFrame{
		columns: columns,
		rows:    rows,
		pix:     make([]byte, columns*rows*4),
		on:      rgba(on),
		off:     rgba(off),
	}
	for i := 0; i < columns*rows; i++ {
		copy(p.pix[i*4:], p.off[:])
	}
	return p
}

func (p *pixelFrame) DrawCell(col int, row int, alive bool) {
	if col < 0 || row < 0 || col >= p.columns || row >= p.rows {
		return
	}
	base := (row*p.columns + col) * 4
	if alive {
		copy(p.pix[base:base+4], p.on[:])
	} else {
		copy(p.pix[base:base+4], p.off[:])
	}
}

//cellAt converts the screen position to the cell position for cells of cellW x cellH pixels
func (p *pixelFrame) cellAt(x int, y int, cellW int, cellH int) (col int, row int, ok bool) {
	if x < 0 || y < 0 || cellW <= 0 || cellH <= 0 {
		return 0, 0, false
	}
	col, row = x/cellW, y/cellH
	if col >= p.columns || row >= p.rows {
		return 0, 0, false
	}
	return col, row, true
}

func rgba(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
