package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
	"github.com/dmitrijs2005/coursekeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Pointer fields tell
// "not set" apart from zero values, so a partial file only overrides what it
// names.
type FileConfig struct {
	DataPath        *string         `json:"data_path" yaml:"data_path"`
	StorageDriver   *string         `json:"storage_driver" yaml:"storage_driver"`
	BusyTimeout     *timex.Duration `json:"busy_timeout" yaml:"busy_timeout"`
	CatalogPath     *string         `json:"catalog_path" yaml:"catalog_path"`
	CompletionScope *string         `json:"completion_scope" yaml:"completion_scope"`
	HashPasswords   *bool           `json:"hash_passwords" yaml:"hash_passwords"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
	LogBackend      *string         `json:"log_backend" yaml:"log_backend"`
}

// parseFile overlays cfg with the file named by -c/-config. YAML is used for
// .yaml/.yml files and JSON otherwise. Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setIf(&cfg.DataPath, fc.DataPath)
	setIf(&cfg.StorageDriver, fc.StorageDriver)
	setIf(&cfg.CatalogPath, fc.CatalogPath)
	setIf(&cfg.CompletionScope, fc.CompletionScope)
	setIf(&cfg.HashPasswords, fc.HashPasswords)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.LogBackend, fc.LogBackend)
	if fc.BusyTimeout != nil {
		cfg.BusyTimeout = fc.BusyTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
