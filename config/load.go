package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const EnvPrefix = "LINKBUDGET_"

var searchPaths = []string{"/etc/linkbudget/config.hcl", "~/.config/linkbudget/config.hcl", "./config.hcl"}

// GetConfigPath returns the first config file found on the search path, or
// "" if there is none.
func GetConfigPath() string {
	for _, path := range searchPaths {
		path = expandHome(path)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			log.Infof("Found config file: %s", path)
			return path
		}
	}
	log.Info("Config file not found!")
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Load reads an HCL config. An explicit path must load. Without one the
// search path is tried, and if that fails too the scenario is read from
// LINKBUDGET_* environment variables.
func Load(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), hcl.Parser(true)); err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", path)
		}
		return k, nil
	}

	if found := GetConfigPath(); found != "" {
		err := k.Load(file.Provider(found), hcl.Parser(true))
		if err == nil {
			return k, nil
		}
		log.Errorf("Could not read config file: %v", err)
	}
	log.Warn("Attempting to use environment variables")
	if err := LoadEnv(k); err != nil {
		return nil, err
	}
	return k, nil
}

// LoadEnv merges LINKBUDGET_SECTION_KEY variables into k as section.key.
// Only the first underscore after the prefix separates section from key, so
// LINKBUDGET_RECEIVER_NOISE_FIGURE_DB becomes receiver.noise_figure_db.
func LoadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
			k = strings.Replace(key, "_", ".", 1)
			log.Debugf("Found config env var: %s=%v", k, v)
			return k, v
		},
	}), nil)
	return errors.Wrap(err, "could not read environment")
}

// Unmarshal decodes the whole of k into a Scenario.
func Unmarshal(k *koanf.Koanf) (Scenario, error) {
	var s Scenario
	if err := k.Unmarshal("", &s); err != nil {
		return Scenario{}, errors.Wrap(err, "could not decode scenario")
	}
	return s, nil
}
