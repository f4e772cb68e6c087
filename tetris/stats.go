package tetris

// linePoints is multiplied by the running line total on every clear, so each
// extra line is worth more than the last.
const linePoints = 3

// Stats are the counters of the game in progress.
type Stats struct {
	Score        uint
	LinesCleared uint
}

func (s *Stats) addLine() {
	s.LinesCleared++
	s.Score += linePoints * s.LinesCleared
}

// Lifetime is the aggregate record kept across games.
type Lifetime struct {
	HighestLines      uint
	TotalLinesCleared uint
	GamesPlayed       uint
	HighestScore      uint
}

// Record folds a finished game into the lifetime totals and reports whether
// it set a new best score or line count.
func (l *Lifetime) Record(game Stats) bool {
	best := false
	if game.Score > l.HighestScore {
		l.HighestScore = game.Score
		best = true
	}
	if game.LinesCleared > l.HighestLines {
		l.HighestLines = game.LinesCleared
		best = true
	}
	l.TotalLinesCleared += game.LinesCleared
	l.GamesPlayed++
	return best
}

// GameSummary is emitted when a game ends.
type GameSummary struct {
	GameID   string
	Level    Level
	Stats    Stats
	Lifetime Lifetime
	NewBest  bool
	Pieces   int
}
