package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/JonathanFerron/oracle/internal/config"
	"github.com/JonathanFerron/oracle/internal/console"
	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/log"
	"github.com/JonathanFerron/oracle/internal/loghandler"
	"github.com/JonathanFerron/oracle/internal/sim"
	"github.com/JonathanFerron/oracle/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "sim":
		err = runSim(ctx, os.Args[2:])
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "cards":
		runCards()
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  oracle sim [--games N] [--seed S] [--cash C] [--workers W] [--max-turns T] [--mode M] [--csv FILE] [--config FILE]")
	fmt.Println("  oracle play [--seed S] [--side a|b] [--config FILE]")
	fmt.Println("  oracle cards")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  sim     Run a batch of random-vs-random games and print statistics")
	fmt.Println("  play    Play one game against the random opponent")
	fmt.Println("  cards   List the card catalog")
}

func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	level, err := loghandler.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(loghandler.NewCompactHandler(os.Stderr, level))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func runSim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	games := fs.Int("games", -1, "number of games to simulate")
	seed := fs.String("seed", "", "master seed (decimal, 0x hex or random)")
	cash := fs.Int("cash", -1, "initial lunas per player")
	workers := fs.Int("workers", 0, "parallel workers")
	maxTurns := fs.Int("max-turns", 0, "turn cap before a game is a draw")
	mode := fs.String("mode", "", "deck mode: random, monochrome or custom")
	csvPath := fs.String("csv", "", "write per-game results to this CSV file")
	fs.Parse(args)

	cfg, logger, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "seed":
			cfg.Seed = *seed
		case "cash":
			cfg.InitialCash = *cash
		case "workers":
			cfg.Workers = *workers
		case "max-turns":
			cfg.MaxTurns = *maxTurns
		case "mode":
			cfg.Mode = *mode
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := simOptions(cfg)
	if err != nil {
		return err
	}
	opts.Logger = logger

	factory := sim.Random(cfg.DefendProbability)
	stats, err := sim.Run(ctx, opts, factory, factory)
	if err != nil {
		return err
	}
	if err := sim.Summarize(stats).WriteText(os.Stdout); err != nil {
		return err
	}

	if *csvPath != "" {
		if err := writeCSV(ctx, *csvPath, stats); err != nil {
			return err
		}
		logger.Info("results written", "tag", "cli", "file", *csvPath)
	}

	st, err := store.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()
	if st != nil {
		id, err := st.SaveRun(ctx, stats)
		if err != nil {
			return err
		}
		logger.Info("run saved", "tag", "cli", "run_id", id)
	}
	return nil
}

func simOptions(cfg *config.Config) (sim.Options, error) {
	seed, err := cfg.SeedValue()
	if err != nil {
		return sim.Options{}, err
	}
	mode, err := cfg.ModeValue()
	if err != nil {
		return sim.Options{}, err
	}
	opts := sim.Options{
		Games:       cfg.Games,
		Seed:        seed,
		InitialCash: game.Lunas(uint16(cfg.InitialCash)),
		MaxTurns:    cfg.MaxTurns,
		Mode:        mode,
		Workers:     cfg.Workers,
	}
	if mode == game.DeckCustom {
		if opts.Decks, err = cfg.CustomDecks(); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func writeCSV(ctx context.Context, path string, stats *sim.GameStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := (sim.CSVExporter{W: f}).Export(ctx, stats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	seed := fs.String("seed", "random", "game seed (decimal, 0x hex or random)")
	side := fs.String("side", "a", "which player you control: a or b")
	fs.Parse(args)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	var player game.PlayerID
	if err := player.UnmarshalText([]byte(*side)); err != nil {
		return err
	}
	gameSeed, err := config.ParseSeed(*seed)
	if err != nil {
		return err
	}

	human := console.New(os.Stdin, os.Stdout)
	opponent := &game.RandomStrategy{DefendProbability: cfg.DefendProbability}
	strategies := [2]game.Strategy{opponent, opponent}
	strategies[player] = human

	fmt.Printf("Seed %d. You are player %s.\n", gameSeed, player)
	d, err := game.NewDuel(game.DuelConfig{
		Seed:        gameSeed,
		InitialCash: game.Lunas(uint16(cfg.InitialCash)),
		MaxTurns:    cfg.MaxTurns,
		Logger:      log.Discard,
	}, strategies[game.PlayerA], strategies[game.PlayerB])
	if err != nil {
		return err
	}
	result, err := d.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Game over after %d turns: %s\n", d.State.Turn, result)
	return nil
}

func runCards() {
	for _, c := range game.Catalog() {
		fmt.Println(c)
	}
}
