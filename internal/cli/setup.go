package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"wedding-trivia/internal/app"
	"wedding-trivia/internal/backend"
	"wedding-trivia/internal/config"
	filestore "wedding-trivia/internal/infra/file"
	pgsource "wedding-trivia/internal/infra/postgres"
	redisstore "wedding-trivia/internal/infra/redis"
	"wedding-trivia/internal/questions"
)

const defaultProfilePath = ".wedding-trivia.json"

func buildClient(cfg config.Config, urlOverride string) (*backend.Client, error) {
	url := urlOverride
	if url == "" {
		url = cfg.Backend.URL
	}
	if url == "" {
		return nil, fmt.Errorf("no backend URL configured; set backend.url or --backend")
	}
	timeout := config.DurationOr(cfg.Backend.Timeout, 10*time.Second)
	return backend.NewClient(url, &http.Client{Timeout: timeout}), nil
}

func buildQuestionSource(ctx context.Context, cfg config.Config) (questions.Source, func(), error) {
	cleanup := func() {}
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		return pgsource.NewQuestionSource(pool), pool.Close, nil
	case cfg.Questions.URL != "":
		return questions.HTTPSource{URL: cfg.Questions.URL}, cleanup, nil
	case cfg.Questions.File != "":
		return questions.FileSource{Path: cfg.Questions.File}, cleanup, nil
	}
	return nil, cleanup, fmt.Errorf("no question source configured; set questions.file, questions.url or postgres.url")
}

func buildProfileStore(cfg config.Config) app.ProfileStore {
	if cfg.Storage.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		return redisstore.NewProfileStore(client, cfg.Storage.Redis.Prefix)
	}
	path := cfg.Storage.File
	if path == "" {
		path = defaultProfilePath
	}
	return filestore.NewProfileStore(path)
}

func controllerConfig(cfg config.Config) app.Config {
	return app.Config{
		Scoring: app.ScoringConfig{
			TimeLimit:    config.DurationOr(cfg.Quiz.TimeLimit, 30*time.Second),
			BasePoints:   config.IntOr(cfg.Quiz.BasePoints, 1000),
			MaxTimeBonus: config.IntOr(cfg.Quiz.MaxTimeBonus, 500),
		},
		AdvancePollInterval: config.DurationOr(cfg.Quiz.AdvancePoll, 2*time.Second),
	}
}
