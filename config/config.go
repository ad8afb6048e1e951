// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// defaultRegionSize is the fallback bp estimate for region types missing
// from the settings
const defaultRegionSize = 30000

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// SampleSize is the number of markers sampled per labeled set
	SampleSize int `mapstructure:"sample-size"`

	// ErrorRate is the per-base substitution probability (0.01 = 1%,
	// ONT-like)
	ErrorRate float64 `mapstructure:"error-rate"`

	// Seed makes sampling and mutation reproducible
	Seed int64 `mapstructure:"seed"`

	// Workers per labeled set during the trial phase; 0 means one per CPU
	Workers int `mapstructure:"workers"`

	// KMCTools is the kmc_tools executable the KMC store queries
	KMCTools string `mapstructure:"kmc-tools"`

	// RegionSizes estimates region lengths in bp, keyed by region type,
	// used when reporting marker density
	RegionSizes map[string]int `mapstructure:"region-sizes"`
}

// New returns a Config populated from Viper settings (either from the local
// settings.yaml) and/or command line arguments
func New() *Config {
	viper.SetDefault("sample-size", 100000)
	viper.SetDefault("error-rate", 0.01)
	viper.SetDefault("seed", 42)
	viper.SetDefault("workers", 0)
	viper.SetDefault("kmc-tools", "kmc_tools")
	viper.SetDefault("region-sizes", map[string]int{
		"ARMS": 30000,
		"CEN":  300000,
	})

	viper.SetConfigName("settings")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		// settings.yaml is optional, defaults and flags cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read settings file: %v", err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into config: %v", err)
	}
	return c
}

// RegionSize returns the estimated bp length of a region type. Lookup is
// case-insensitive since viper lowercases map keys read from files.
func (c *Config) RegionSize(region string) int {
	for name, size := range c.RegionSizes {
		if strings.EqualFold(name, region) {
			return size
		}
	}
	return defaultRegionSize
}
