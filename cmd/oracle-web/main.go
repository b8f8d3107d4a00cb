package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonathanFerron/oracle/internal/config"
	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/loghandler"
	"github.com/JonathanFerron/oracle/internal/store"
	"github.com/JonathanFerron/oracle/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides web_addr)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := loghandler.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(loghandler.NewCompactHandler(os.Stderr, level))
	slog.SetDefault(logger)
	if addr == "" {
		addr = cfg.WebAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := web.Options{
		InitialCash:       game.Lunas(uint16(cfg.InitialCash)),
		MaxTurns:          cfg.MaxTurns,
		DefendProbability: cfg.DefendProbability,
		Logger:            logger,
	}
	// A nil *store.Store in the interface would not compare equal to nil.
	if st != nil {
		opts.Store = st
	}
	return web.NewServer(opts).ListenAndServe(ctx, addr)
}
