package universe

import "math/rand/v2"

//State is the state of a single cell
type State uint8

const (
	Dead State = iota
	Alive
)

//NeighborCount is the number of cells surrounding any cell of the torus
const NeighborCount = 8

func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

//Cell holds the current state and the state computed for the next generation
//next is meaningful only between ComputeNextState and Commit of the same step
type Cell struct {
	state State
	next  State
}

//IsAlive reports the current state
func (c *Cell) IsAlive() bool {
	return c.state == Alive
}

//State returns the current state
func (c *Cell) State() State {
	return c.state
}

func (c *Cell) Die() {
	c.state = Dead
}

func (c *Cell) Rise() {
	c.state = Alive
}

//InitializeState sets the cell alive or dead with equal probability
func (c *Cell) InitializeState(r *rand.Rand) {
	if r.IntN(2) == 0 {
		c.Rise()
	} else {
		c.Die()
	}
}

//ComputeNextState stores the state the cell takes in the next generation
//the current state is not touched until Commit
func (c *Cell) ComputeNextState(neighbors [NeighborCount]State) {
	alive := 0
	for _, s := range neighbors {
		if s == Alive {
			alive++
		}
	}
	c.next = NextState(c.state, alive)
}

//Commit applies the state computed by ComputeNextState
func (c *Cell) Commit() {
	if c.next == Alive {
		c.Rise()
	} else {
		c.Die()
	}
}
