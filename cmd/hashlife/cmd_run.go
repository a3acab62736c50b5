package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"hashlife/pkg/rle"
)

var cmdRun = &cli.Command{
	Name:      "run",
	Usage:     "advance a pattern and report its population",
	ArgsUsage: " ",
	Flags: append(append([]cli.Flag{
		&cli.Uint64Flag{
			Name:  "steps",
			Usage: "generations to advance",
			Value: 1024,
		},
		&cli.Uint64Flag{
			Name:  "chunk",
			Usage: "generations between progress reports",
			Value: 1 << 10,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write the final pattern as RLE to this file",
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Usage:   "serve Prometheus metrics on this address while running",
			EnvVars: []string{"HASHLIFE_METRICS_ADDR"},
		},
	}, patternFlags...), engineFlags...),
	Action: runRun,
}

func runRun(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log := slog.Default().With("system", "hashlife-run")

	points, err := loadPattern(cctx)
	if err != nil {
		return err
	}
	u, err := newEngine(cctx, points)
	if err != nil {
		return err
	}

	if addr := cctx.String("metrics-addr"); addr != "" {
		srv := &http.Server{Addr: addr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("metrics server shutdown", "err", err)
			}
		}()
		log.Info("serving metrics", "addr", addr)
	}

	steps := cctx.Uint64("steps")
	chunk := max(cctx.Uint64("chunk"), 1)
	start := time.Now()
	log.Info("starting", "engine", u.Name(), "cells", u.Population(), "steps", steps)
	for done := uint64(0); done < steps; {
		if err := ctx.Err(); err != nil {
			log.Warn("interrupted", "generation", u.Generation())
			break
		}
		n := min(chunk, steps-done)
		u.Step(n)
		done += n
		log.Info("progress", "generation", u.Generation(), "population", u.Population(), "elapsed", time.Since(start))
	}

	fmt.Fprintf(os.Stdout, "generation=%d population=%d elapsed=%s\n", u.Generation(), u.Population(), time.Since(start).Round(time.Millisecond))

	if path := cctx.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := rle.Write(f, u.Points()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("wrote pattern", "path", path)
	}
	return nil
}
