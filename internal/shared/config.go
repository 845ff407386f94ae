package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	DatasetSource string // csv | mysql
	DatasetPath   string
	MySQLDSN      string
	ModelPath     string
	ModelURL      string // when set, the remote model server replaces ModelPath
	ModelRPS      int
	RedisAddr     string // empty disables caching
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	TopKeywords   int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer config value")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		DatasetSource: strings.ToLower(env("DATASET_SOURCE", "csv")),
		DatasetPath:   env("DATASET_PATH", "cleaned_data.csv"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?charset=utf8mb4"),
		ModelPath:     env("MODEL_PATH", "sentiment_model.json"),
		ModelURL:      os.Getenv("MODEL_URL"),
		ModelRPS:      atoi("MODEL_RPS", 10),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		TopKeywords:   atoi("TOP_KEYWORDS", 100),
	}
	if c.DatasetSource != "csv" && c.DatasetSource != "mysql" {
		log.Warn().Str("source", c.DatasetSource).Msg("unknown DATASET_SOURCE, using csv")
		c.DatasetSource = "csv"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
