package universe

/*
	NextState applies the Conway's rules (B3/S23) to a cell with the given count of live neighbours

	fewer than 2 - dies of under-population
	more than 3  - dies of over-crowding
	exactly 3    - lives (survival or reproduction)
	exactly 2    - keeps its current state
*/
func NextState(current State, aliveNeighbors int) State {
	if aliveNeighbors < 2 {
		return Dead
	} else if aliveNeighbors > 3 {
		return Dead
	} else if aliveNeighbors == 3 {
		return Alive
	}
	return current
}
