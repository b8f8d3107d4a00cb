package sim

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/JonathanFerron/oracle/internal/game"
)

// Histogram layout for game lengths: HistogramBins bins of HistogramWidth
// turns starting at HistogramMin, plus an underflow and an overflow bin.
const (
	HistogramBins  = 27
	HistogramWidth = 4
	HistogramMin   = 20
)

// GameResult is the outcome of one game of a batch.
type GameResult struct {
	SimID  int         `json:"sim_id"`
	Seed   uint32      `json:"seed"`
	Result game.Result `json:"result"`
	Turns  int         `json:"turns"`
	Energy [2]int      `json:"energy"` // final energy of A and B
}

// GameStats accumulates the results of a batch.
type GameStats struct {
	Seed        uint32        `json:"seed"`
	InitialCash uint16        `json:"initial_cash"`
	MaxTurns    int           `json:"max_turns"`
	Mode        game.DeckMode `json:"mode"`
	Wins        [2]int        `json:"wins"`
	Draws       int           `json:"draws"`
	Results     []GameResult  `json:"results"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

func newGameStats(opts Options, results []GameResult) *GameStats {
	s := &GameStats{
		Seed:        opts.Seed,
		InitialCash: game.DefaultCash,
		MaxTurns:    opts.MaxTurns,
		Mode:        opts.Mode,
		Results:     results,
	}
	if opts.InitialCash != nil {
		s.InitialCash = *opts.InitialCash
	}
	if s.MaxTurns == 0 {
		s.MaxTurns = game.DefaultMaxTurns
	}
	for _, r := range results {
		if winner, ok := r.Result.Winner(); ok {
			s.Wins[winner]++
		} else {
			s.Draws++
		}
	}
	return s
}

// Games is the number of games played.
func (s *GameStats) Games() int { return len(s.Results) }

// TurnCounts returns the length of every game in play order.
func (s *GameStats) TurnCounts() []int {
	turns := make([]int, len(s.Results))
	for i, r := range s.Results {
		turns[i] = r.Turns
	}
	return turns
}

// Histogram counts game lengths into fixed-width bins.
type Histogram struct {
	Min       int   `json:"min"`
	Width     int   `json:"width"`
	Underflow int   `json:"underflow"`
	Bins      []int `json:"bins"`
	Overflow  int   `json:"overflow"`
}

// NewHistogram bins turns using the standard layout.
func NewHistogram(turns []int) Histogram {
	h := Histogram{Min: HistogramMin, Width: HistogramWidth, Bins: make([]int, HistogramBins)}
	upper := h.Min + len(h.Bins)*h.Width
	for _, t := range turns {
		switch {
		case t < h.Min:
			h.Underflow++
		case t >= upper:
			h.Overflow++
		default:
			h.Bins[(t-h.Min)/h.Width]++
		}
	}
	return h
}

// Summary is the reduced view of a batch.
type Summary struct {
	Games       int       `json:"games"`
	WinsA       int       `json:"wins_a"`
	WinsB       int       `json:"wins_b"`
	Draws       int       `json:"draws"`
	WinRateA    float64   `json:"win_rate_a"`
	WinRateB    float64   `json:"win_rate_b"`
	DrawRate    float64   `json:"draw_rate"`
	AvgTurns    float64   `json:"avg_turns"`
	MinTurns    int       `json:"min_turns"`
	MaxTurns    int       `json:"max_turns"`
	MedianTurns int       `json:"median_turns"`
	Histogram   Histogram `json:"histogram"`
}

// Summarize reduces stats to rates and turn statistics.
func Summarize(s *GameStats) Summary {
	turns := s.TurnCounts()
	sum := Summary{
		Games:     len(turns),
		WinsA:     s.Wins[game.PlayerA],
		WinsB:     s.Wins[game.PlayerB],
		Draws:     s.Draws,
		Histogram: NewHistogram(turns),
	}
	if len(turns) == 0 {
		return sum
	}

	n := float64(len(turns))
	sum.WinRateA = float64(sum.WinsA) / n
	sum.WinRateB = float64(sum.WinsB) / n
	sum.DrawRate = float64(sum.Draws) / n

	sorted := slices.Clone(turns)
	slices.Sort(sorted)
	total := 0
	for _, t := range sorted {
		total += t
	}
	sum.AvgTurns = float64(total) / n
	sum.MinTurns = sorted[0]
	sum.MaxTurns = sorted[len(sorted)-1]
	sum.MedianTurns = sorted[len(sorted)/2]
	return sum
}

// WriteText prints the results block shown at the end of a simulation run.
func (s Summary) WriteText(w io.Writer) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("Number of wins for player A: %d\n", s.WinsA)
	printf("Number of wins for player B: %d\n", s.WinsB)
	printf("Number of draws: %d\n", s.Draws)
	printf("\nAverage = %.1f, Minimum = %d, Maximum = %d number of turns per game\n", s.AvgTurns, s.MinTurns, s.MaxTurns)

	h := s.Histogram
	printf("\nHistogram with %d bins, each with a width of %d, starting from %d:\n", len(h.Bins), h.Width, h.Min)
	printf("Bin (<%3d): %d\n", h.Min, h.Underflow)
	for i, n := range h.Bins {
		start := h.Min + i*h.Width
		printf("Bin [%3d - %3d]: %d\n", start, start+h.Width-1, n)
	}
	printf("Bin (>=%3d): %d\n", h.Min+len(h.Bins)*h.Width, h.Overflow)
	return err
}
