package cli

import (
	stderrors "errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
)

// Configuration keys. Each can also be set through an ARTIST_<KEY>
// environment variable.
const (
	KeyOutputDir               = "output_dir"
	KeyPackageName             = "package_name"
	KeyViewPackageName         = "view_package_name"
	KeySuperinterfaceClassName = "superinterface_class_name"
	KeyViewNamePrefix          = "view_name_prefix"
	KeyFormatSource            = "format_source"
	KeyDialect                 = "dialect"
	KeyManifests               = "manifests"
)

// ConfigName is the base name of the config file looked up in the working
// directory: artist.yaml, artist.toml or artist.json.
const ConfigName = "artist"

// Config holds the configuration for a CLI run
type Config struct {
	OutputDir               string   `mapstructure:"output_dir"`
	PackageName             string   `mapstructure:"package_name"`
	ViewPackageName         string   `mapstructure:"view_package_name"`
	SuperinterfaceClassName string   `mapstructure:"superinterface_class_name"`
	ViewNamePrefix          string   `mapstructure:"view_name_prefix"`
	FormatSource            bool     `mapstructure:"format_source"`
	Dialect                 string   `mapstructure:"dialect"`
	Manifests               []string `mapstructure:"manifests"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// RunConfig converts c into the engine's per-run configuration.
func (c *Config) RunConfig() models.RunConfig {
	return models.RunConfig{
		OutputDir:               c.OutputDir,
		PackageName:             c.PackageName,
		ViewPackageName:         c.ViewPackageName,
		SuperinterfaceClassName: c.SuperinterfaceClassName,
		ViewNamePrefix:          c.ViewNamePrefix,
		FormatSource:            c.FormatSource,
	}
}

// SetDefaults registers every key so that environment variables are seen
// by Unmarshal even when no file sets them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyPackageName, "")
	v.SetDefault(KeyViewPackageName, "")
	v.SetDefault(KeySuperinterfaceClassName, "")
	v.SetDefault(KeyViewNamePrefix, "")
	v.SetDefault(KeyFormatSource, true)
	v.SetDefault(KeyDialect, DefaultDialect)
	v.SetDefault(KeyManifests, []string{})
}

// NewViper creates a viper instance with artist's defaults and environment
// binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ARTIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadConfig reads configFile into v, or looks for artist.{yaml,toml,json}
// in the working directory when configFile is empty. A missing default file
// is not an error; a missing explicit one is.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			subject := configFile
			if subject == "" {
				subject = ConfigName
			}
			return nil, errors.WrapConfigurationError(subject, "read", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigurationError(v.ConfigFileUsed(), "decode", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Dialect = strings.ToLower(strings.TrimSpace(cfg.Dialect))
	if err := resolveFilePaths(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveFilePaths anchors relative output_dir and manifests values taken
// from the config file at the file's directory. Values that came from
// flags or the environment stay relative to the working directory.
func resolveFilePaths(cfg *Config) error {
	if cfg.File == "" {
		return nil
	}
	file := viper.New()
	file.SetConfigFile(cfg.File)
	if err := file.ReadInConfig(); err != nil {
		return errors.WrapConfigurationError(cfg.File, "read", err)
	}

	base := filepath.Dir(cfg.File)
	if file.IsSet(KeyOutputDir) && cfg.OutputDir == file.GetString(KeyOutputDir) {
		cfg.OutputDir = resolveRelativeTo(base, cfg.OutputDir)
	}
	if file.IsSet(KeyManifests) && slices.Equal(cfg.Manifests, file.GetStringSlice(KeyManifests)) {
		cfg.Manifests = slices.Clone(cfg.Manifests)
		for i, m := range cfg.Manifests {
			cfg.Manifests[i] = resolveRelativeTo(base, m)
		}
	}
	return nil
}

func resolveRelativeTo(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
