package conf

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Cfg carries the storage subsystem configuration.
//
// Example jetstore.ini:
//
//	[storage]
//	basedir    = /var/lib/jetstore
//	datadir    = /var/lib/jetstore/data
//	pageformat = v4
//
//	[logs]
//	log_error = /var/log/jetstore/error.log
//	log_infos = /var/log/jetstore/jetstore.log
//	log_level = info
type Cfg struct {
	Raw *ini.File

	BaseDir string
	DataDir string

	// PageFormat selects the on-disk layout parameter set, "v3" or "v4".
	PageFormat string

	LogError string
	LogInfos string
	LogLevel string
}

func NewCfg() *Cfg {
	return &Cfg{
		BaseDir:    ".",
		DataDir:    "data",
		PageFormat: "v4",
		LogLevel:   "info",
	}
}

// Load reads configuration from an ini file, keeping defaults for any
// missing key.
func (cfg *Cfg) Load(configPath string) error {
	raw, err := ini.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Raw = raw

	storage := raw.Section("storage")
	if v := storage.Key("basedir").String(); v != "" {
		cfg.BaseDir = v
	}
	if v := storage.Key("datadir").String(); v != "" {
		cfg.DataDir = v
	}
	if v := strings.ToLower(storage.Key("pageformat").String()); v != "" {
		cfg.PageFormat = v
	}

	logs := raw.Section("logs")
	if v := logs.Key("log_error").String(); v != "" {
		cfg.LogError = v
	}
	if v := logs.Key("log_infos").String(); v != "" {
		cfg.LogInfos = v
	}
	if v := logs.Key("log_level").String(); v != "" {
		cfg.LogLevel = v
	}

	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(cfg.BaseDir, cfg.DataDir)
	}
	return nil
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (cfg *Cfg) EnsureDataDir() error {
	return os.MkdirAll(cfg.DataDir, 0755)
}
