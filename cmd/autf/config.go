package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the user's home directory when --config is not given.
const DefaultConfigName = ".autf.yaml"

// Config holds the defaults for the flags shared by the enumeration commands.
type Config struct {
	Rank          int    `yaml:"rank"`
	Inversion     bool   `yaml:"inversion"`
	Workers       int    `yaml:"workers"`
	Catalog       string `yaml:"catalog,omitempty"`
	ProgressEvery int    `yaml:"progress_every,omitempty"`
	Compress      bool   `yaml:"compress"`
	Letters       bool   `yaml:"letters"`
}

// DefaultConfig is used for any field absent from the config file.
var DefaultConfig = Config{
	Rank: 2,
}

// DefaultConfigPath returns $HOME/.autf.yaml, or "" if there is no home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigName)
}

// LoadConfig reads the config at pathname over DefaultConfig.
// A missing file is not an error unless mustExist is set.
func LoadConfig(pathname string, mustExist bool) (Config, error) {
	cfg := DefaultConfig
	if pathname == "" {
		return cfg, nil
	}

	buf, err := os.ReadFile(pathname)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %q", pathname)
	}
	if err = yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %q", pathname)
	}
	if cfg.Catalog != "" && !filepath.IsAbs(cfg.Catalog) {
		cfg.Catalog = filepath.Join(filepath.Dir(pathname), cfg.Catalog)
	}
	return cfg, nil
}

// WriteConfig saves cfg to pathname.
func WriteConfig(pathname string, cfg Config) error {
	file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	err = writeConfigTo(file, cfg)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

func writeConfigTo(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return err
	}
	return enc.Close()
}
