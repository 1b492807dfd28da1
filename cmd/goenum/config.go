package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = ".goenum"
	configFileType = "yaml"
	envPrefix      = "GOENUM"

	cfgKeyMaxDepth = "max_depth"
	cfgKeyMaxBytes = "max_bytes"
	cfgKeyDriver   = "driver"
	cfgKeyLogLevel = "log_level"

	driverStd    = "std"
	driverGoJSON = "gojson"

	defaultLogLevel = "warn"
)

var flagKeys = map[string]string{
	cfgKeyMaxDepth: "max-depth",
	cfgKeyMaxBytes: "max-bytes",
	cfgKeyDriver:   "driver",
	cfgKeyLogLevel: "log-level",
}

// bindFlags maps persistent flags onto config keys. Precedence is
// flag > GOENUM_* env > config file > default. A flag missing from fs is an
// error.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag --%s to %s: %w", flag, key, err)
		}
	}
	return nil
}

// loadConfig reads the config file into v. Without an explicit path it looks
// for .goenum.yaml in the working directory; a missing file is not an error.
func loadConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &nf) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
