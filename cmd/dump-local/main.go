// Command dump-local prints the contents of the badger-backed local
// annotation-type store as indented JSON on stdout. Useful for inspecting
// what the offline client will see.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	local "github.com/slidelab/pathclient/internal/adapter/local/annotationtype"
	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/app"
	"github.com/slidelab/pathclient/internal/config"
	"github.com/slidelab/pathclient/internal/domain"
)

func main() {
	cfg, err := config.LoadLocal()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Debug("starting", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := local.Open(cfg.LocalStore, logger)
	if err != nil {
		logger.Error("open local store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()

	var all []domain.RawAnnotationType
	page := rest.Page{Limit: 100}
	for {
		types, info, err := repo.List(ctx, page, rest.Sort{})
		if err != nil {
			logger.Error("list annotation types", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, t := range types {
			all = append(all, t.ToRaw())
		}
		if !info.HasMore {
			break
		}
		page = info.Next()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		logger.Error("encode annotation types", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("dump completed", slog.Int("count", len(all)))
}
