package view

import "strings"

//frame is the text picture of the field, one char per cell
type frame struct {
	columns int
	rows    int
	cells   []bool //row by row
}

func newFrame(columns int, rows int) *frame {
	return &frame{columns: columns, rows: rows, cells: make([]bool, columns*rows)}
}

func (f *frame) DrawCell(col int, row int, alive bool) {
	if col < 0 || row < 0 || col >= f.columns || row >= f.rows {
		return
	}
	f.cells[row*f.columns+col] = alive
}

func (f *frame) clone() *frame {
	c := *f
	c.cells = append([]bool(nil), f.cells...)
	return &c
}

//render builds the text to fit into maxW x maxH area
//when the field is larger the picture is cropped and the last visible line is replaced by cropMsg
func (f *frame) render(maxW int, maxH int, live string, dead string, cropMsg string) string {
	var b strings.Builder
	crop := f.columns > maxW || f.rows > maxH
	for row := 0; row < f.rows; row++ {
		//discard the data outside the view area
		if row >= maxH {
			break
		}
		if row != 0 {
			b.WriteByte('\n')
		}
		if crop && row == maxH-1 {
			b.WriteString(cropMsg)
			break
		}
		for col := 0; col < f.columns && col < maxW; col++ {
			if f.cells[row*f.columns+col] {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}
