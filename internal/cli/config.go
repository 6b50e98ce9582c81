package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wareki/internal/paths"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "WAREKI"

	cfgKeyDataDir     = "data_dir"
	cfgKeyErasFile    = "eras_file"
	cfgKeyLocale      = "locale"
	cfgKeyResourceDir = "resource_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
	cfgKeyAddr        = "addr"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	DataDir     string `yaml:"data_dir,omitempty"`
	ErasFile    string `yaml:"eras_file,omitempty"`
	Locale      string `yaml:"locale"`
	ResourceDir string `yaml:"resource_dir,omitempty"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	Addr        string `yaml:"addr"`
}

// defaultConfig is what init writes when config.yaml does not exist.
func defaultConfig() configFile {
	return configFile{
		Locale:    types.DefaultLocale,
		LogLevel:  "warn",
		LogFormat: "text",
		Addr:      "127.0.0.1:8080",
	}
}

// loadConfig reads config.yaml from configDir using Viper. A missing file or
// directory is not an error; defaults apply. WAREKI_LOCALE, WAREKI_LOG_LEVEL,
// WAREKI_LOG_FORMAT, WAREKI_ADDR, WAREKI_RESOURCE_DIR and WAREKI_ERAS_FILE
// override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	def := defaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyLocale, def.Locale)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFormat, def.LogFormat)
	v.SetDefault(cfgKeyAddr, def.Addr)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyLocale, cfgKeyLogLevel, cfgKeyLogFormat, cfgKeyAddr, cfgKeyResourceDir, cfgKeyErasFile} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("%w: read config: %v", types.ErrConfiguration, err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml in configDir unless it exists.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfig()
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# wareki configuration\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}

// config builds the types.Config for this invocation from flags, config.yaml
// and the environment.
func (a *app) config() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir), a.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	erasFile, err := paths.ResolveErasFile(a.flags.erasFile, a.cfg.GetString(cfgKeyErasFile), a.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve eras file: %w", err)
	}
	locale := a.flags.locale
	if locale == "" {
		locale = a.cfg.GetString(cfgKeyLocale)
	}
	resourceDir := a.cfg.GetString(cfgKeyResourceDir)
	if resourceDir != "" && !filepath.IsAbs(resourceDir) {
		resourceDir = filepath.Join(a.configDir, resourceDir)
	}

	cfg := types.Config{
		DataDir:     dataDir,
		ErasFile:    erasFile,
		Locale:      locale,
		ResourceDir: resourceDir,
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
