package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"maxconnect4/cache"
	"maxconnect4/communication/client"
	"maxconnect4/communication/server"
	"maxconnect4/config"
	"maxconnect4/engine"
	"maxconnect4/experiments"
	"maxconnect4/experiments/metrics"
	"maxconnect4/game"
	"maxconnect4/meta"
	"maxconnect4/searcher"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `Usage: maxconnect4 [flags] interactive <input_file> <computer-next|human-next> <depth>
   or: maxconnect4 [flags] one-move <input_file> <output_file> <depth>
   or: maxconnect4 [flags] experiment
   or: maxconnect4 [flags] serve

Flags:
`

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	serverURL := flag.String("server", "", "Move server URL; the computer asks it instead of searching locally")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "interactive":
		err = runInteractive(ctx, cfg, *serverURL, args[1:])
	case "one-move":
		err = runOneMove(ctx, cfg, *serverURL, args[1:])
	case "experiment":
		err = runExperiment(ctx, cfg)
	case "serve":
		err = runServer(ctx, cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", args[0])
	}
}

func runInteractive(ctx context.Context, cfg *config.Config, serverURL string, args []string) error {
	if len(args) != 3 {
		flag.Usage()
		os.Exit(2)
	}
	board, err := game.LoadBoard(args[0])
	if err != nil {
		return err
	}
	if err := parseDepth(cfg, args[2]); err != nil {
		return err
	}

	var humanNext bool
	switch strings.ToLower(args[1]) {
	case "human-next", "h":
		humanNext = true
	case "computer-next", "c":
	default:
		return fmt.Errorf("next player must be computer-next or human-next, got %q", args[1])
	}

	computer, closeComputer, err := newComputer(ctx, cfg, serverURL)
	if err != nil {
		return err
	}
	defer closeComputer()

	human := engine.NewHumanAgent(os.Stdin, os.Stdout)
	agents := map[game.Player]engine.Agent{
		board.Turn():            computer,
		board.Turn().Opponent(): human,
	}
	if humanNext {
		agents[board.Turn()], agents[board.Turn().Opponent()] = human, computer
	}

	fmt.Print("\nMaxConnect-4 Game\nGame Start\n")
	_, moveMetrics, err := engine.NewSession(board, agents, os.Stdout).Run(ctx)
	if err != nil {
		return err
	}
	if cfg.Search.Metrics {
		for _, m := range moveMetrics {
			if m.Depth > 0 {
				log.Info().Msgf("move %d: %d nodes, %d leaves, %d prunes in %v", m.Step, m.Nodes, m.Leaves, m.Prunes, m.Duration)
			}
		}
	}
	return nil
}

func runOneMove(ctx context.Context, cfg *config.Config, serverURL string, args []string) error {
	if len(args) != 3 {
		flag.Usage()
		os.Exit(2)
	}
	board, err := game.LoadBoard(args[0])
	if err != nil {
		return err
	}
	if err := parseDepth(cfg, args[2]); err != nil {
		return err
	}

	computer, closeComputer, err := newComputer(ctx, cfg, serverURL)
	if err != nil {
		return err
	}
	defer closeComputer()

	fmt.Print("\nMaxConnect-4 Game\n")
	session := engine.NewSession(board, map[game.Player]engine.Agent{
		game.PlayerOne: computer,
		game.PlayerTwo: computer,
	}, os.Stdout)

	played, err := session.OneMove(ctx)
	if err != nil || !played {
		return err
	}
	return game.SaveBoard(args[1], session.Board())
}

func runExperiment(ctx context.Context, cfg *config.Config) error {
	e := experiments.DepthExperiment(cfg.Experiment, cfg.Search.Evaluator, cfg.Search.Parallel)

	var recorder metrics.Recorder
	if cfg.Experiment.DatabaseURL != "" {
		w, err := metrics.NewPostgresWriter(ctx, cfg.Experiment.DatabaseURL, e.Name)
		if err != nil {
			return err
		}
		defer w.Close()
		recorder = w
	} else {
		w, err := metrics.NewWriter(cfg.Experiment.OutputDir, e.Name)
		if err != nil {
			return err
		}
		log.Info().Msgf("writing results to %s", w.Dir())
		recorder = w
	}

	records, err := e.Run(ctx, recorder)
	if err != nil {
		return err
	}

	wins := map[int]int{}
	for _, r := range records {
		if r.Winner == int(game.Empty) {
			wins[0]++
			continue
		}
		wins[agentFor(r, r.Winner)]++
	}
	for _, c := range e.Configs {
		log.Info().Msgf("agent %d (depth %d): %d wins", c.ID, c.Depth, wins[c.ID])
	}
	log.Info().Msgf("draws: %d", wins[0])
	return nil
}

// agentFor returns the agent that played the given player in a game. Agent1
// always moves first.
func agentFor(r metrics.GameRecord, player int) int {
	if player == r.StartingPlayer {
		return r.Agent1
	}
	return r.Agent2
}

func runServer(ctx context.Context, cfg *config.Config) error {
	c, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	s, err := server.NewServer(server.Options{
		DefaultDepth: cfg.Search.Depth,
		MaxDepth:     cfg.Server.MaxDepth,
		Evaluator:    cfg.Search.Evaluator,
		Parallel:     cfg.Search.Parallel,
		Cache:        c,
	})
	if err != nil {
		return err
	}

	err = s.ListenAndServe(ctx, cfg.Server.Addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func parseDepth(cfg *config.Config, arg string) error {
	depth, err := strconv.Atoi(arg)
	if err != nil || depth < meta.MIN_DEPTH {
		return fmt.Errorf("depth must be an integer of at least %d, got %q", meta.MIN_DEPTH, arg)
	}
	cfg.Search.Depth = depth
	return nil
}

// newComputer builds the computer player: a remote agent when a server URL is
// given, a local search otherwise.
func newComputer(ctx context.Context, cfg *config.Config, serverURL string) (engine.Agent, func(), error) {
	if serverURL != "" {
		return engine.NewRemoteAgent(client.NewClient(serverURL), cfg.Search.Depth), func() {}, nil
	}

	evaluate, err := game.EvaluatorByName(cfg.Search.Evaluator)
	if err != nil {
		return nil, nil, err
	}
	c, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	options := []searcher.Option{
		searcher.WithDepth(cfg.Search.Depth),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithParallelExpansion(cfg.Search.Parallel),
	}
	if cfg.Search.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return engine.NewSearchAgent(searcher.NewAlphaBeta(options...), cfg.Search.Evaluator, c), closeCache, nil
}

func openCache(ctx context.Context, cfg config.CacheConfig) (cache.MoveCache, func(), error) {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemory(), func() {}, nil
	case "redis":
		r, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
