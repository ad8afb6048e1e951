// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"
)

func TestConfig_RegionSize(t *testing.T) {
	c := &Config{
		RegionSizes: map[string]int{
			// viper lowercases map keys read from settings.yaml
			"arms": 30000,
			"cen":  300000,
		},
	}

	tests := []struct {
		name   string
		region string
		want   int
	}{
		{
			"arm region, upper case as parsed from database names",
			"ARMS",
			30000,
		},
		{
			"centromere region",
			"CEN",
			300000,
		},
		{
			"unknown region falls back to the arm estimate",
			"TELO",
			30000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.RegionSize(tt.region); got != tt.want {
				t.Errorf("Config.RegionSize(%q) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}
}

func TestConfig_RegionSize_unconfigured(t *testing.T) {
	c := &Config{}
	if got := c.RegionSize("CEN"); got != defaultRegionSize {
		t.Errorf("Config.RegionSize() with no settings = %v, want %v", got, defaultRegionSize)
	}
}
