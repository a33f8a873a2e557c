package snake

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Moves    uint64
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	GameOver bool
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Moves:    g.moves,
		Score:    g.score,
		SnakeLen: len(g.snake),
		Dir:      g.direction,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	if len(g.snake) > 0 {
		s.HeadX = g.snake[0].X
		s.HeadY = g.snake[0].Y
	}
	return s
}
