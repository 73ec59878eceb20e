// Package config loads engine tuning knobs from a YAML file, following
// tuannm99-novasql/internal/config.go's viper-based LoadConfig shape with
// the page/storage/server fields replaced by the in-memory engine's own
// knobs (index branching/bucket sizing, default index kind).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the engine's tuning knobs.
type Config struct {
	AppName string `mapstructure:"app_name"`

	Index struct {
		// Kind selects the default primary-key index: "bptree", "exthash",
		// or "linhash".
		Kind string `mapstructure:"kind"`

		// BTreeOrder is the B+-tree's branching factor.
		BTreeOrder int `mapstructure:"btree_order"`

		// HashSlots is the per-bucket capacity for ExtHashMap/LinHashMap.
		HashSlots int `mapstructure:"hash_slots"`

		// ExtDirSize is ExtHashMap's initial directory size.
		ExtDirSize int `mapstructure:"ext_dir_size"`

		// LinInitSize is LinHashMap's initial home-bucket count.
		LinInitSize int `mapstructure:"lin_init_size"`
	} `mapstructure:"index"`
}

// LoadConfig reads a YAML config file at path.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the config used when no file is supplied, matching the
// index package's own design defaults.
func Default() *Config {
	cfg := &Config{AppName: "reldb"}
	cfg.Index.Kind = "bptree"
	cfg.Index.BTreeOrder = 5
	cfg.Index.HashSlots = 4
	cfg.Index.ExtDirSize = 4
	cfg.Index.LinInitSize = 4
	return cfg
}
