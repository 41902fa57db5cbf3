package universe

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name  string  //template name
	Descr string  //template descr
	Cells []Point //positions of the live cells, wrapped around the grid edges
}

//DefaultTemplates are added to every new universe
var DefaultTemplates = []Template{
	{
		Name:  "block",
		Descr: "2x2 still life",
		Cells: []Point{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
	},
	{
		Name:  "blinker",
		Descr: "period 2 oscillator",
		Cells: []Point{{2, 1}, {2, 2}, {2, 3}},
	},
	{
		Name:  "glider",
		Descr: "moves one cell diagonally every 4 generations",
		Cells: []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
	{
		Name:  "sample",
		Descr: "the test sample with 3 stable patterns",
		Cells: []Point{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		},
	},
}
