package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JonathanFerron/oracle/internal/config"
	"github.com/JonathanFerron/oracle/internal/game"
	"github.com/JonathanFerron/oracle/internal/loghandler"
	oraclemcp "github.com/JonathanFerron/oracle/internal/mcp"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	agent := flag.String("agent", "a", "which player the agent controls: a or b")
	flag.Parse()

	if err := run(*configPath, *agent); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, agent string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := loghandler.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	// Stdout carries the MCP protocol, so logs go to stderr.
	logger := slog.New(loghandler.NewCompactHandler(os.Stderr, level))

	var player game.PlayerID
	if err := player.UnmarshalText([]byte(agent)); err != nil {
		return err
	}
	seed, err := cfg.SeedValue()
	if err != nil {
		return err
	}

	tools := oraclemcp.NewTools(oraclemcp.SessionConfig{
		Seed:              seed,
		InitialCash:       uint16(cfg.InitialCash),
		MaxTurns:          cfg.MaxTurns,
		AgentPlayer:       player,
		DefendProbability: cfg.DefendProbability,
	}, logger)
	defer tools.Close()

	s := server.NewMCPServer("oracle", "1.0.0")
	tools.Register(s)
	return server.ServeStdio(s)
}
