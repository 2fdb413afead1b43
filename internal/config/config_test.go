package config

import (
	"os"
	"testing"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{"defaults", nil, Config{Theme: "classic"}},
		{"theme", map[string]string{EnvTheme: " Neon "}, Config{Theme: "neon"}},
		{"no color standard", map[string]string{"NO_COLOR": "1"}, Config{Theme: "classic", NoColor: true}},
		{"no color own", map[string]string{EnvNoColor: "yes"}, Config{Theme: "classic", NoColor: true}},
		{"debug", map[string]string{EnvDebug: "true"}, Config{Theme: "classic", Debug: true}},
		{"debug off", map[string]string{EnvDebug: "0"}, Config{Theme: "classic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromEnv(func(k string) string { return tt.env[k] })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvTheme, "")
	os.Unsetenv(EnvTheme)
	t.Setenv(EnvDebug, "")
	os.Unsetenv(EnvDebug)

	if err := os.WriteFile(EnvFile, []byte("TASKS_THEME=mono\nTASKS_DEBUG=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "mono" || !cfg.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvTheme, "neon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "neon" {
		t.Errorf("cfg = %+v", cfg)
	}
}
