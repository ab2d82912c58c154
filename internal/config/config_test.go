package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsAndPairArgPrecedence(t *testing.T) {
	t.Setenv("OBA_PAIR", "ethusd")

	cfg, err := Load("", "btcusd")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Pair != "btcusd" {
		t.Errorf("expected CLI pair arg to win over env, got %q", cfg.Pair)
	}
	if cfg.Engine.Depth != 10 {
		t.Errorf("expected default engine.depth 10, got %d", cfg.Engine.Depth)
	}
	if cfg.Publish.ListenAddress != "[::1]:1079" {
		t.Errorf("expected default publish address, got %q", cfg.Publish.ListenAddress)
	}
}

func TestLoad_EnvOverridesDefaultWhenNoPairArg(t *testing.T) {
	t.Setenv("OBA_PAIR", "ethusd")

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pair != "ethusd" {
		t.Errorf("expected env pair, got %q", cfg.Pair)
	}
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "pair: solusd\nengine:\n  depth: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pair != "solusd" {
		t.Errorf("expected pair from file, got %q", cfg.Pair)
	}
	if cfg.Engine.Depth != 5 {
		t.Errorf("expected engine.depth 5 from file, got %d", cfg.Engine.Depth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Pair:    "btcusd",
				Engine:  EngineConfig{Depth: 10},
				Publish: PublishConfig{ListenAddress: "[::1]:1079"},
			},
			wantErr: false,
		},
		{
			name: "missing pair",
			cfg: Config{
				Engine:  EngineConfig{Depth: 10},
				Publish: PublishConfig{ListenAddress: "[::1]:1079"},
			},
			wantErr: true,
		},
		{
			name: "zero depth",
			cfg: Config{
				Pair:    "btcusd",
				Engine:  EngineConfig{Depth: 0},
				Publish: PublishConfig{ListenAddress: "[::1]:1079"},
			},
			wantErr: true,
		},
		{
			name: "invalid listen address",
			cfg: Config{
				Pair:    "btcusd",
				Engine:  EngineConfig{Depth: 10},
				Publish: PublishConfig{ListenAddress: "not-a-host-port"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
