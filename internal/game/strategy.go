package game

import (
	"context"

	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/rnd"
)

// Strategy decides moves for one seat. It proposes, the Duel applies: a
// strategy never mutates the game. r is the game's random stream; a
// strategy that consumes randomness must draw from it so games stay
// reproducible from their seed.
type Strategy interface {
	// ChooseAttack picks the attacker's move for the turn.
	ChooseAttack(ctx context.Context, v *View, r rnd.Source) (Move, error)

	// ChooseDefense picks the defender's champions, or Pass to take the hit.
	ChooseDefense(ctx context.Context, v *View, r rnd.Source) (Move, error)
}

// Notifier is implemented by strategies that want to see every game event.
type Notifier interface {
	Notify(ctx context.Context, event log.GameEvent) error
}

// Mulliganer is implemented by strategies that pick their own mulligan
// instead of the automatic rule. Only the second player mulligans.
type Mulliganer interface {
	ChooseMulligan(ctx context.Context, v *View) ([]CardIndex, error)
}
