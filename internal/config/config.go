// Package config loads the scraper configuration from json5 files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

type Translate struct {
	Endpoint  string  `json:"endpoint"`
	APIKey    string  `json:"api_key"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	BatchSize int     `json:"batch_size"`
	RPS       float64 `json:"rps"`
}

type Config struct {
	DataFile   string `json:"data_file"`
	SnapshotDB string `json:"snapshot_db"`
	CacheFile  string `json:"cache_file"`

	BaseURL   string `json:"base_url"`
	SearchURL string `json:"search_url"`
	UserAgent string `json:"user_agent"`
	// Response cache directory, disabled when empty.
	PageCacheDir string `json:"page_cache_dir"`

	MaxPages  int `json:"max_pages"`
	DelayMs   int `json:"delay_ms"`
	TimeoutMs int `json:"timeout_ms"`

	Sets     []string `json:"sets"`
	Keywords []string `json:"keywords"`

	Translate Translate `json:"translate"`
}

func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func Default() Config {
	sets := []string{}
	for i := 1; i <= 20; i++ {
		sets = append(sets, fmt.Sprintf("op%02d", i))
	}
	for i := 1; i <= 30; i++ {
		sets = append(sets, fmt.Sprintf("st%02d", i))
	}
	for i := 1; i <= 20; i++ {
		sets = append(sets, fmt.Sprintf("eb%02d", i))
	}
	sets = append(sets, "p-101", "prb01", "prb02", "op11-op20", "op01-op10", "st01-st30", "eb01-eb20")

	return Config{
		DataFile:   filepath.Join("src", "data", "cards.json"),
		SnapshotDB: "cards.db",
		CacheFile:  "translation_cache.json",
		BaseURL:    "https://yuyu-tei.jp/sell/opc/s",
		SearchURL:  "https://yuyu-tei.jp/sell/opc/s/search",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		MaxPages:   100,
		DelayMs:    1000,
		TimeoutMs:  15000,
		Sets:       sets,
		Keywords: []string{
			"P-",
			"フラッグシップ",
			"チャンピオンシップ",
			"プロモ",
			"3rd Anniversary",
			"3rd Anniversary! One Piece Card Treasure Campaign",
			"2nd Anniversary",
			"BANDAI CARD GAMES Fest 24-25 World Tour",
			"Let's Start Campaign",
			"Premium Card Collection",
			"Standard Battle Pack",
			"ONE PIECE FILM RED",
			"ONE PIECE magazine",
			"V Jump",
			"Girls Edition",
			"Treasure Campaign",
		},
		Translate: Translate{
			Source:    "ja",
			Target:    "en",
			BatchSize: 50,
			RPS:       1,
		},
	}
}

// Read loads name and then name.local (for config.json5 that is
// config.local.json5), the local file overriding the first. Fields left
// unset by both are taken from Default. os.ErrNotExist is returned when
// neither file exists.
func Read(name string) (Config, error) {
	var out Config
	found := false

	ext := filepath.Ext(name)
	localName := strings.TrimSuffix(name, ext) + ".local" + ext

	for _, path := range []string{name, localName} {
		contents, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return out, err
		}

		var cfg Config
		if err := json5.Unmarshal(contents, &cfg); err != nil {
			return out, fmt.Errorf("error parsing %s: %w", path, err)
		}
		if err := mergo.Merge(&out, cfg, mergo.WithOverride); err != nil {
			return out, err
		}
		if found {
			slog.Info("merging config with local overrides", "local", path)
		}
		found = true
	}
	if !found {
		return Default(), os.ErrNotExist
	}

	if err := mergo.Merge(&out, Default()); err != nil {
		return out, err
	}
	return out, nil
}

// Load is Read that falls back to the defaults when no file exists.
func Load(name string) (Config, error) {
	cfg, err := Read(name)
	if os.IsNotExist(err) {
		slog.Debug("no config file, using defaults", "name", name)
		return cfg, nil
	}
	return cfg, err
}
