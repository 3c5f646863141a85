package emu

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"

	"nescore/emu/log"
)

// DefaultCycles is one second of NTSC CPU time.
const DefaultCycles = 1789773

type Config struct {
	Run    RunConfig    `toml:"run"`
	Log    LogConfig    `toml:"log"`
	Verify VerifyConfig `toml:"verify"`
}

type RunConfig struct {
	Cycles int64  `toml:"cycles"`
	Trace  string `toml:"trace"` // FILE|stdout|stderr, empty for no trace
}

type LogConfig struct {
	Modules []string `toml:"modules"`
}

type VerifyConfig struct {
	Jobs int `toml:"jobs"`
}

func DefaultConfig() Config {
	return Config{
		Run:    RunConfig{Cycles: DefaultCycles},
		Verify: VerifyConfig{Jobs: runtime.NumCPU()},
	}
}

// Check replaces invalid values with their defaults.
func (cfg *Config) Check() {
	if cfg.Run.Cycles <= 0 {
		cfg.Run.Cycles = DefaultCycles
	}
	if cfg.Verify.Jobs <= 0 {
		cfg.Verify.Jobs = runtime.NumCPU()
	}

	mods := cfg.Log.Modules[:0]
	for _, name := range cfg.Log.Modules {
		if _, ok := log.ModuleByName(name); !ok {
			log.ModEmu.WarnZ("ignoring unknown log module").String("name", name).End()
			continue
		}
		mods = append(mods, name)
	}
	cfg.Log.Modules = mods
}

// LogMask returns the mask of the log modules to enable.
func (cfg *Config) LogMask() log.ModuleMask {
	var mask log.ModuleMask
	for _, name := range cfg.Log.Modules {
		if mod, ok := log.ModuleByName(name); ok {
			mask |= mod.Mask()
		}
	}
	return mask
}

const cfgFilename = "config.toml"

// ConfigPath returns the path of the configuration file, in the nescore
// directory of the user configuration directory.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nescore", cfgFilename), nil
}

// LoadConfig loads the configuration file at path. Missing values take their
// default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to load config")
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("unknown config key").String("key", key.String()).End()
	}
	cfg.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the nescore config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.ModEmu.Warnf("Using default config: %v", err)
		}
		return DefaultConfig()
	}
	return cfg
}

// Save writes cfg at path, creating the directory if needed.
func (cfg Config) Save(path string) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// SaveConfig into nescore config directory.
func SaveConfig(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return errors.Wrap(err, "failed to save config")
	}
	return nil
}
