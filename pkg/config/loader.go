package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/paths"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VIMFILES_"

// Options selects the sources Load reads.
type Options struct {
	// ConfigFile is an explicit user file; it must exist. Empty means the
	// XDG location, which is optional.
	ConfigFile string

	// Overrides holds dotted keys set from command line flags.
	Overrides map[string]interface{}

	// SkipUserFile ignores the XDG user file. Tests use it.
	SkipUserFile bool
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User file
	path, required := opts.ConfigFile, true
	if path == "" && !opts.SkipUserFile {
		path, required = paths.UserConfigFile(), false
	}
	if path != "" {
		loaded, err := loadFile(k, path, required)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey(k)), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to decode configuration")
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Source = sources

	logger.Debug().
		Strs("sources", sources).
		Str("installRoot", cfg.InstallRoot).
		Str("configRoot", cfg.ConfigRoot).
		Str("manifest", cfg.Manifest).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, os.ErrNotExist) && !required {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}

	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return true, nil
}

// sections are the nested tables; their first underscore is the delimiter.
var sections = []string{"remote", "git"}

// envKey maps VIMFILES_REMOTE_URL_FORMAT to remote.url_format and
// VIMFILES_INSTALL_ROOT to install_root. Variables naming no known key are
// ignored.
func envKey(k *koanf.Koanf) func(string) string {
	return func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		for _, section := range sections {
			if strings.HasPrefix(key, section+"_") {
				key = section + "." + strings.TrimPrefix(key, section+"_")
				break
			}
		}
		if !k.Exists(key) {
			return ""
		}
		return key
	}
}
