// Package bootstrap builds the startup dependencies shared by the binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"review_dash/internal/adapters/csvsource"
	"review_dash/internal/adapters/model"
	"review_dash/internal/adapters/modelserver"
	"review_dash/internal/app"
	"review_dash/internal/domain"
	"review_dash/internal/shared"
	mysqlrepo "review_dash/internal/storage/mysql"
)

// Runtime holds the read-only objects built once at process start.
type Runtime struct {
	Dataset    *app.Dataset
	Classifier domain.Classifier
	Resolver   *app.SentimentResolver
}

// Load reads the dataset and the classifier concurrently. Either failure is fatal to the caller.
func Load(ctx context.Context, cfg shared.Config) (*Runtime, error) {
	var (
		rt Runtime
		g  errgroup.Group
	)
	g.Go(func() error {
		src, closeSrc, err := OpenSource(cfg)
		if err != nil {
			return err
		}
		defer closeSrc()
		ds, err := app.NewLoadService(src, nil).Load(ctx)
		if err != nil {
			return err
		}
		rt.Dataset = ds
		return nil
	})
	g.Go(func() error {
		clf, err := OpenClassifier(ctx, cfg)
		if err != nil {
			return err
		}
		rt.Classifier = clf
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res, err := app.NewSentimentResolver(rt.Classifier)
	if err != nil {
		return nil, err
	}
	rt.Resolver = res
	return &rt, nil
}

// OpenSource returns the configured review source and a close func.
func OpenSource(cfg shared.Config) (domain.ReviewSource, func(), error) {
	switch cfg.DatasetSource {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil
	default:
		log.Info().Str("path", cfg.DatasetPath).Msg("reading dataset from csv")
		return csvsource.New(cfg.DatasetPath), func() {}, nil
	}
}

// OpenClassifier prefers the remote model server when MODEL_URL is set.
func OpenClassifier(ctx context.Context, cfg shared.Config) (domain.Classifier, error) {
	if cfg.ModelURL != "" {
		cl, err := modelserver.New(cfg.ModelURL, cfg.ModelRPS)
		if err != nil {
			return nil, err
		}
		if err := cl.Ping(ctx); err != nil {
			return nil, fmt.Errorf("model server %s unavailable: %w", cfg.ModelURL, err)
		}
		log.Info().Str("url", cfg.ModelURL).Msg("using remote model server")
		return cl, nil
	}
	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.ModelPath).Msg("model loaded")
	return m, nil
}
