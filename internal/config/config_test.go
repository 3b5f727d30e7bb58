package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.GustInterval != 4*time.Second {
		t.Errorf("Default() GustInterval = %v, want 4s", cfg.GustInterval)
	}
	if cfg.SwirlThreshold != 0.6 {
		t.Errorf("Default() SwirlThreshold = %v, want 0.6", cfg.SwirlThreshold)
	}
	if cfg.PatchCount != 35 {
		t.Errorf("Default() PatchCount = %d, want 35", cfg.PatchCount)
	}
	if len(cfg.Textures) != 3 {
		t.Errorf("Default() Textures = %v, want 3 entries", cfg.Textures)
	}
	if cfg.Volume != 0.5 {
		t.Errorf("Default() Volume = %v, want 0.5", cfg.Volume)
	}
	if cfg.HintFade != 500*time.Millisecond {
		t.Errorf("Default() HintFade = %v, want 500ms", cfg.HintFade)
	}
	if len(cfg.Card) != len(DefaultCard) {
		t.Errorf("Default() Card = %v, want %v", cfg.Card, DefaultCard)
	}
	if !cfg.AutoplayEnabled() {
		t.Error("Default() should enable autoplay")
	}
	if !cfg.JournalEnabled() {
		t.Error("Default() should enable the journal")
	}
}

func TestDefault_TexturesAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Textures[0] = "changed.png"

	if DefaultTextures[0] != "foreground_flowers.png" {
		t.Errorf("DefaultTextures[0] = %q, mutated through Default()", DefaultTextures[0])
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
gustInterval: 2s
swirlThreshold: 0.25
patchCount: 12
textures: [a.png, b.png]
volume: 0.8
autoplay: false
hintFade: 250ms
database: "-"
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.GustInterval != 2*time.Second {
		t.Errorf("GustInterval = %v, want 2s", cfg.GustInterval)
	}
	if cfg.SwirlThreshold != 0.25 {
		t.Errorf("SwirlThreshold = %v, want 0.25", cfg.SwirlThreshold)
	}
	if cfg.PatchCount != 12 {
		t.Errorf("PatchCount = %d, want 12", cfg.PatchCount)
	}
	if len(cfg.Textures) != 2 || cfg.Textures[1] != "b.png" {
		t.Errorf("Textures = %v, want [a.png b.png]", cfg.Textures)
	}
	if cfg.AutoplayEnabled() {
		t.Error("AutoplayEnabled() = true, want false")
	}
	if cfg.HintFade != 250*time.Millisecond {
		t.Errorf("HintFade = %v, want 250ms", cfg.HintFade)
	}
	if cfg.JournalEnabled() {
		t.Error("JournalEnabled() = true, want false")
	}
	// Unset fields keep their defaults
	if cfg.PositionJitter != DefaultPositionJitter {
		t.Errorf("PositionJitter = %v, want default %v", cfg.PositionJitter, DefaultPositionJitter)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("FrameRate = %d, want default %d", cfg.FrameRate, DefaultFrameRate)
	}
}

func TestParse_ExplicitZeros(t *testing.T) {
	cfg, err := Parse([]byte("swirlThreshold: 0\npositionJitter: 0\nvolume: 0\nhintFade: 0s\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
	}{
		{"swirlThreshold", cfg.SwirlThreshold},
		{"positionJitter", cfg.PositionJitter},
		{"volume", cfg.Volume},
		{"hintFade", float64(cfg.HintFade)},
	}
	for _, tt := range tests {
		if tt.got != 0 {
			t.Errorf("%s = %v, want explicit 0 kept", tt.name, tt.got)
		}
	}

	// Fields without a meaningful zero still fall back
	if cfg.GustInterval != DefaultGustInterval {
		t.Errorf("GustInterval = %v, want default %v", cfg.GustInterval, DefaultGustInterval)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative interval", "gustInterval: -1s"},
		{"threshold above one", "swirlThreshold: 1.5"},
		{"negative patch count", "patchCount: -3"},
		{"negative jitter", "positionJitter: -1"},
		{"empty texture", "textures: [a.png, \"\"]"},
		{"volume too loud", "volume: 2"},
		{"frame rate too high", "frameRate: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalid", tt.data, err)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("gustInterval: [not, a, duration]"))
	if err == nil {
		t.Fatal("Parse() expected error for malformed YAML")
	}
	if errors.Is(err, ErrInvalid) {
		t.Errorf("Parse() error = %v, want a decode error rather than ErrInvalid", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PatchCount != DefaultPatchCount {
		t.Errorf("Load() PatchCount = %d, want %d", cfg.PatchCount, DefaultPatchCount)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("patchCount: 20\nmusic: song.mp3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PatchCount != 20 {
		t.Errorf("Load() PatchCount = %d, want 20", cfg.PatchCount)
	}
	if cfg.Music != "song.mp3" {
		t.Errorf("Load() Music = %q, want song.mp3", cfg.Music)
	}
}
