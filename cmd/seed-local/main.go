// Command seed-local populates the badger-backed local annotation-type store
// with a starter catalog, so the client has something to render in offline
// and demo mode.
//
// Flags:
//
//	--reset  drop existing annotation types before seeding
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	local "github.com/slidelab/pathclient/internal/adapter/local/annotationtype"
	"github.com/slidelab/pathclient/internal/adapter/rest"
	restann "github.com/slidelab/pathclient/internal/adapter/rest/annotationtype"
	"github.com/slidelab/pathclient/internal/app"
	"github.com/slidelab/pathclient/internal/config"
)

func main() {
	resetFlag := flag.Bool("reset", false, "drop existing annotation types before seeding")
	flag.Parse()

	cfg, err := config.LoadLocal()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := local.Open(cfg.LocalStore, logger)
	if err != nil {
		logger.Error("open local store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()

	if *resetFlag {
		if err := reset(ctx, repo); err != nil {
			logger.Error("reset local store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("existing annotation types dropped")
	}

	created := 0
	for _, req := range seedRequests() {
		t, err := repo.Create(ctx, req)
		if err != nil {
			logger.Error("seed annotation type",
				slog.String("name", req.Name),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		logger.Info("annotation type seeded",
			slog.String("id", t.ID),
			slog.String("name", t.Name),
		)
		created++
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Error("count annotation types", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed",
		slog.Int("created", created),
		slog.Int("total", total),
	)
}

func reset(ctx context.Context, repo *local.Repo) error {
	for {
		types, _, err := repo.List(ctx, rest.Page{Limit: 100}, rest.Sort{})
		if err != nil {
			return err
		}
		if len(types) == 0 {
			return nil
		}
		ids := make([]string, 0, len(types))
		for _, t := range types {
			ids = append(ids, t.ID)
		}
		if err := repo.BatchDelete(ctx, ids); err != nil {
			return err
		}
	}
}

func seedRequests() []restann.CreateRequest {
	tumor := "Tumor tissue outline"
	necrosis := "Necrotic region"
	grade := "Tumor grade per annotated region"
	cellularity := "Estimated tumor cellularity, percent"
	red := "#e53935"
	purple := "#8e24aa"
	blue := "#1e88e5"
	green := "#43a047"
	var minPct, maxPct float64 = 0, 100

	return []restann.CreateRequest{
		{Name: "Tumor", Type: "boolean", Description: &tumor, Global: true, Color: &red},
		{Name: "Necrosis", Type: "boolean", Description: &necrosis, Global: true, Color: &purple},
		{Name: "Grade", Type: "select", Description: &grade, Options: []string{"G1", "G2", "G3"}, Required: true, Color: &blue},
		{Name: "Cellularity", Type: "number", Description: &cellularity, Min: &minPct, Max: &maxPct, Color: &green},
		{Name: "Notes", Type: "text", Global: true},
	}
}
