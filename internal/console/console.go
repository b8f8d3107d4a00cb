// Package console lets a person play a seat from a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// ErrInputClosed is returned when the input ends while a decision is pending.
var ErrInputClosed = errors.New("console input closed")

// Strategy reads decisions from in and renders the table to out.
type Strategy struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Strategy {
	return &Strategy{in: bufio.NewReader(in), out: out}
}

func (s *Strategy) ChooseAttack(ctx context.Context, v *game.View, _ rnd.Source) (game.Move, error) {
	return s.choose(v)
}

func (s *Strategy) ChooseDefense(ctx context.Context, v *game.View, _ rnd.Source) (game.Move, error) {
	return s.choose(v)
}

// Notify prints each game event as a log line.
func (s *Strategy) Notify(ctx context.Context, e log.GameEvent) error {
	_, err := fmt.Fprintln(s.out, log.FormatEvent(e))
	return err
}

// ChooseMulligan asks which opening cards to replace; an empty line keeps
// the hand.
func (s *Strategy) ChooseMulligan(ctx context.Context, v *game.View) ([]game.CardIndex, error) {
	s.renderState(v)
	fmt.Fprintf(s.out, "\nMulligan: enter up to %d hand positions separated by spaces, or press Enter to keep\n", game.MulliganMax)
	s.renderHand(v.You.Hand)
	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.readLine()
		if err != nil {
			return nil, err
		}
		parts := strings.Fields(line)
		if len(parts) > game.MulliganMax {
			fmt.Fprintf(s.out, "Enter at most %d numbers\n", game.MulliganMax)
			continue
		}
		cards, ok := s.parsePositions(parts, v.You.Hand)
		if ok {
			return cards, nil
		}
	}
}

func (s *Strategy) choose(v *game.View) (game.Move, error) {
	moves := game.LegalMoves(v)
	s.renderState(v)
	s.renderMoves(moves)
	idx, err := s.readChoice(len(moves))
	if err != nil {
		return game.Move{}, err
	}
	return moves[idx], nil
}

func (s *Strategy) renderState(v *game.View) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "╔══════════════════════════════════════════════════════╗")
	opp := v.Opponent
	fmt.Fprintf(s.out, "║  OPPONENT (energy %d)  Luna: %d  Hand: %d  Deck: %d  Discard: %d\n",
		opp.Energy, opp.Cash, opp.HandCount, opp.DeckCount, len(opp.Discard))
	fmt.Fprintf(s.out, "║  Combat:  %s\n", formatZone(opp.Combat))
	fmt.Fprintln(s.out, "║──────────────────────────────────────────────────────")
	you := v.You
	fmt.Fprintf(s.out, "║  Combat:  %s\n", formatZone(you.Combat))
	fmt.Fprintf(s.out, "║  YOU (energy %d)  Luna: %d  Hand: %d  Deck: %d  Discard: %d\n",
		you.Energy, you.Cash, you.HandCount, you.DeckCount, len(you.Discard))
	fmt.Fprintln(s.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d (round %d) | %s", v.Turn, v.Round, v.Phase)
	if v.Current == v.Player {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(s.out, turnInfo)
}

func (s *Strategy) renderHand(hand []game.CardIndex) {
	for i, c := range hand {
		fmt.Fprintf(s.out, "  [%d] %s\n", i+1, c)
	}
}

func formatZone(cards []game.CardIndex) string {
	if len(cards) == 0 {
		return "[ ]"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = "[" + c.String() + "]"
	}
	return strings.Join(parts, " ")
}

func (s *Strategy) renderMoves(moves []game.Move) {
	fmt.Fprintln(s.out, "\nMoves:")
	for i, m := range moves {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, m)
	}
}

func (s *Strategy) readChoice(count int) (int, error) {
	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > count {
			fmt.Fprintf(s.out, "Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, nil
	}
}

func (s *Strategy) parsePositions(parts []string, hand []game.CardIndex) ([]game.CardIndex, bool) {
	var cards []game.CardIndex
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > len(hand) {
			fmt.Fprintf(s.out, "Each number must be between 1 and %d\n", len(hand))
			return nil, false
		}
		if slices.Contains(cards, hand[n-1]) {
			fmt.Fprintf(s.out, "Position %d listed twice\n", n)
			return nil, false
		}
		cards = append(cards, hand[n-1])
	}
	return cards, true
}

// readLine returns the next trimmed line. A final line without a newline is
// still returned; ErrInputClosed follows once nothing is left.
func (s *Strategy) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
