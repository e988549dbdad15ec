/*
Wumpus runs a single game of the Wumpus world: a hero agent explores a small
toroidal cave of walls, pits and monsters that it cannot see, guided only by
local percepts (stench, breeze, bumps, screams), while a wandering companion
roams the cave and logs what it finds. The hero wins by shooting every monster
and loses by walking into one, or into a pit.

The ground truth and the hero's private map can be dumped to the console each
tick (-debug) or watched in a browser while the game runs (-serve).
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"wumpus/game"
	"wumpus/server"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

type options struct {
	config string
	debug  bool
	serve  bool
	host   string
	port   string
	seed   int64
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("wumpus", flag.ContinueOnError)
	fs.StringVar(&opts.config, "config", "", "path to a yaml or toml game config; the fixture game if empty")
	fs.BoolVar(&opts.debug, "debug", false, "print the world and the hero's map every tick")
	fs.BoolVar(&opts.serve, "serve", false, "serve a spectator page while the game runs")
	fs.StringVar(&opts.host, "host", "", "the host ip, overrides the config")
	fs.StringVar(&opts.port, "port", "", "the host port, overrides the config")
	fs.Int64Var(&opts.seed, "seed", 0, "wanderer seed, overrides the config")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConfig(opts *options) (cfg *game.GameConfig, err error) {
	if opts.config == "" {
		cfg = game.DefaultConfig()
	} else if cfg, err = game.Load(opts.config); err != nil {
		return nil, err
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != "" {
		cfg.Server.Port = opts.port
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg game.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func runApp(ctx context.Context, args []string) (err error) {
	var opts *options
	if opts, err = parseFlags(args); err != nil {
		return
	}
	var cfg *game.GameConfig
	if cfg, err = loadConfig(opts); err != nil {
		return
	}

	var logger *zap.Logger
	if logger, err = newLogger(cfg.Logging); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gameOpts := []game.Option{game.WithLogger(logger)}
	if opts.debug {
		gameOpts = append(gameOpts, game.WithDebug(os.Stdout))
	}
	var g *game.Game
	if g, err = game.New(cfg, gameOpts...); err != nil {
		return
	}

	if !opts.serve {
		var outcome game.Outcome
		if outcome, err = g.Run(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
			return
		}
		fmt.Println(outcome.Message)
		return nil
	}

	return runWithViewer(ctx, cfg, g, logger)
}

// runWithViewer runs the game while serving its snapshots. The server keeps
// running after the game ends so the final state stays visible, until ctx is
// done.
func runWithViewer(ctx context.Context, cfg *game.GameConfig, g *game.Game, logger *zap.Logger) error {
	snapshots := make(chan game.Snapshot)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv, err := server.NewServer(ctx, addr, g.Snapshot(), snapshots, logger)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.Serve(groupCtx)
	})
	group.Go(func() error {
		defer close(snapshots)
		outcome, err := g.Run(groupCtx, func(ctx context.Context, snap game.Snapshot) {
			select {
			case snapshots <- snap:
			case <-ctx.Done():
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Println(outcome.Message)
		return nil
	})
	return group.Wait()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runApp(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
