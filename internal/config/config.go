package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"

	"github.com/digipratibha/stuportal/internal/model"
)

type Config struct {
	DBDSN         string           `json:"db_dsn"`
	Port          int              `json:"port"`
	JWTSecret     string           `json:"jwt_secret"`
	JWTTTLHours   int              `json:"jwt_ttl_hours"`
	MigrationsDir string           `json:"migrations_dir"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	LogConfig     logger.LogConfig `json:"log_config"`
	AI            AIConfig         `json:"ai"`
	KnowledgeBase []model.KBEntry  `json:"knowledge_base"`
	Jobs          JobsConfig       `json:"jobs"`
}

type AIConfig struct {
	Provider      string                 `json:"provider"`
	Args          map[string]interface{} `json:"args"`
	GenerateModel string                 `json:"generate_model"`
	EmbedModel    string                 `json:"embed_model"`
	Timeout       int                    `json:"timeout"`
	MaxInputChars int                    `json:"max_input_chars"`
	CacheSize     int                    `json:"cache_size"`
	CacheTTLMins  int                    `json:"cache_ttl_minutes"`
}

type JobsConfig struct {
	ReembedCron  string `json:"reembed_cron"`
	ReembedBatch int    `json:"reembed_batch"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("db_dsn is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.GenerateModel == "" {
		return nil, fmt.Errorf("ai.generate_model is required")
	}
	if cfg.AI.EmbedModel == "" {
		return nil, fmt.Errorf("ai.embed_model is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 30
	}
	if cfg.AI.MaxInputChars == 0 {
		cfg.AI.MaxInputChars = 8000
	}
	if cfg.AI.CacheSize == 0 {
		cfg.AI.CacheSize = 10000
	}
	if cfg.AI.CacheTTLMins == 0 {
		cfg.AI.CacheTTLMins = 120
	}
	if len(cfg.KnowledgeBase) == 0 {
		cfg.KnowledgeBase = defaultKnowledgeBase()
	}
	if cfg.Jobs.ReembedCron == "" {
		cfg.Jobs.ReembedCron = "*/10 * * * *"
	}
	if cfg.Jobs.ReembedBatch == 0 {
		cfg.Jobs.ReembedBatch = 50
	}
	return &cfg, nil
}

func defaultKnowledgeBase() []model.KBEntry {
	return []model.KBEntry{
		{Keyword: "admission", Answer: "Admissions open from April to July. Visit admissions office or apply online."},
		{Keyword: "courses", Answer: "We offer B.Tech, B.Sc, M.Tech, MBA, and various diploma programs."},
		{Keyword: "campus", Answer: "Our campus has modern labs, libraries, hostels, sports complex, and cafeterias."},
		{Keyword: "contact", Answer: "Reach us at contact@college.edu or call +91-12345-67890."},
	}
}
