package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"app"`

	Scan struct {
		SeedID          int `yaml:"seed_id"`
		MaxJobs         int `yaml:"max_jobs"`
		MissThreshold   int `yaml:"miss_threshold"`
		Backtrack       int `yaml:"backtrack"`
		CheckpointEvery int `yaml:"checkpoint_every"`
	} `yaml:"scan"`

	HTTP struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		RetryCount        int     `yaml:"retry_count"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
	} `yaml:"http"`

	Auth struct {
		Email string `yaml:"email"`
	} `yaml:"auth"`

	Feeds struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		SiteURL     string `yaml:"site_url"`
		FeedBaseURL string `yaml:"feed_base_url"`
	} `yaml:"feeds"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "data"
	cfg.App.BaseURL = "https://espritconnect.com"
	cfg.Scan.SeedID = 795
	cfg.Scan.MaxJobs = 200
	cfg.Scan.MissThreshold = 2
	cfg.Scan.Backtrack = 1
	cfg.Scan.CheckpointEvery = 1
	cfg.HTTP.RequestsPerSecond = 1.0
	cfg.HTTP.Burst = 1
	cfg.HTTP.RetryCount = 3
	cfg.HTTP.TimeoutSeconds = 30
	cfg.Feeds.Title = "Esprit Connect Jobs Feed"
	cfg.Feeds.Description = "Latest job postings from Esprit Connect"
	cfg.Feeds.SiteURL = "https://espritconnect.com/jobs"
	cfg.Feeds.FeedBaseURL = ""
	return cfg
}
