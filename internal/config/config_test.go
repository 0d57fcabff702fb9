package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got error: %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir 'data', got %q", cfg.DataDir)
	}
	if cfg.Load.Workers != 3 {
		t.Errorf("expected 3 workers by default, got %d", cfg.Load.Workers)
	}
	if cfg.NetGEX.StrikeWidth != 50.0 {
		t.Errorf("expected strike width 50, got %v", cfg.NetGEX.StrikeWidth)
	}
	if !cfg.NetGEX.DealerShort {
		t.Error("expected dealer_short true by default")
	}
	if cfg.DGI.MinAbsDelta != 0.15 || cfg.DGI.MaxAbsDelta != 0.55 {
		t.Errorf("unexpected default delta band: %v-%v", cfg.DGI.MinAbsDelta, cfg.DGI.MaxAbsDelta)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	_ = os.Setenv("GEXLAB_NETGEX_STRIKE_WIDTH", "25")
	defer func() { _ = os.Unsetenv("GEXLAB_NETGEX_STRIKE_WIDTH") }()

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NetGEX.StrikeWidth != 25.0 {
		t.Errorf("expected env override strike width 25, got %v", cfg.NetGEX.StrikeWidth)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("data_dir: /srv/snapshots\nnetgex:\n  dealer_short: false\n")
	if err := os.WriteFile(path, body, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/srv/snapshots" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.NetGEX.DealerShort {
		t.Error("expected dealer_short false from file")
	}
	// Untouched keys keep defaults.
	if cfg.Load.Workers != 3 {
		t.Errorf("workers = %d, want default 3", cfg.Load.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Load.Workers = 0 }},
		{"negative strike width", func(c *Config) { c.NetGEX.StrikeWidth = -1 }},
		{"zero multiplier", func(c *Config) { c.NetGEX.Multiplier = 0 }},
		{"inverted delta band", func(c *Config) { c.DGI.MinAbsDelta = 0.6; c.DGI.MaxAbsDelta = 0.2 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"zero rate", func(c *Config) { c.Server.RatePerSecond = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNetGEXParams(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.NetGEXParams()
	if p.StrikeWidth != cfg.NetGEX.StrikeWidth || p.Multiplier != cfg.NetGEX.Multiplier ||
		p.GammaScale != cfg.NetGEX.GammaScale || p.DealerShort != cfg.NetGEX.DealerShort {
		t.Errorf("params do not mirror config: %+v vs %+v", p, cfg.NetGEX)
	}
}
