package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/JonathanFerron/oracle/internal/config"
	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
)

// watchResult is the last frame of a watch feed.
type watchResult struct {
	Type   string      `json:"type"` // always "result"
	Seed   uint32      `json:"seed"`
	Result game.Result `json:"result"`
	Turns  int         `json:"turns"`
	Energy [2]int      `json:"energy"`
	Error  string      `json:"error,omitempty"`
}

// feed is an EventLogger that streams every event to a WebSocket. The first
// write error cancels the game.
type feed struct {
	ctx    context.Context
	cancel context.CancelFunc
	conn   *websocket.Conn
	delay  time.Duration
	err    error
}

func (f *feed) Log(e log.GameEvent) {
	if f.err != nil {
		return
	}
	if f.err = wsjson.Write(f.ctx, f.conn, e); f.err != nil {
		f.cancel()
		return
	}
	if f.delay > 0 {
		t := time.NewTimer(f.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-f.ctx.Done():
		}
	}
}

func (f *feed) Events() []log.GameEvent { return nil }

// handleWatch plays one random-vs-random game and streams its events.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seed, err := config.ParseSeed(q.Get("seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var delay time.Duration
	if v := q.Get("delay_ms"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			writeError(w, http.StatusBadRequest, "delay_ms must be a non-negative number")
			return
		}
		delay = min(time.Duration(ms)*time.Millisecond, maxWatchDelay)
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// The feed never reads; CloseRead handles pings and the client's close.
	ctx = conn.CloseRead(ctx)

	f := &feed{ctx: ctx, cancel: cancel, conn: conn, delay: delay}
	strategy := &game.RandomStrategy{DefendProbability: s.opts.DefendProbability}
	d, err := game.NewDuel(game.DuelConfig{
		Seed:        seed,
		InitialCash: s.opts.InitialCash,
		MaxTurns:    s.opts.MaxTurns,
		Logger:      f,
	}, strategy, strategy)
	if err != nil {
		conn.Close(websocket.StatusInternalError, "setup failed")
		return
	}

	s.logger.Info("watch started", "seed", seed)
	result, err := d.Run(ctx)
	if f.err != nil {
		s.logger.Info("watcher left", "seed", seed, "err", f.err)
		return
	}

	final := watchResult{
		Type:   "result",
		Seed:   seed,
		Result: result,
		Turns:  d.State.Turn,
		Energy: [2]int{d.State.Players[game.PlayerA].Energy, d.State.Players[game.PlayerB].Energy},
	}
	if err != nil {
		final.Error = err.Error()
	}
	if err := wsjson.Write(ctx, conn, final); err != nil {
		return
	}
	conn.Close(websocket.StatusNormalClosure, "game over")
}
