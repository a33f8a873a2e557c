package snake

// arenaLayout is the playfield in cells. '#' is a wall, anything else is floor.
// It is larger than the default view, so the camera has to follow the head.
var arenaLayout = []string{
	"################################################################################",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..........######..........................................######..............#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#.......................................#......................................#",
	"#.......................................#......................................#",
	"#.......................................#......................................#",
	"#.......................................#......................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#......#...........................................................#...........#",
	"#......#...........................................................#...........#",
	"#......#...........................................................#...........#",
	"#......#...........................................................#...........#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#...........................######################.............................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..........######..........................................######..............#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"#..............................................................................#",
	"################################################################################",
}

// parseArena returns the wall set and the arena size in cells.
func parseArena(layout []string) (walls map[cell]bool, w, h int) {
	walls = make(map[cell]bool)
	h = len(layout)
	for y, row := range layout {
		if len(row) > w {
			w = len(row)
		}
		for x, ch := range row {
			if ch == '#' {
				walls[cell{X: x, Y: y}] = true
			}
		}
	}
	return walls, w, h
}
