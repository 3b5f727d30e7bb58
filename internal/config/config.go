package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) when a loaded config fails validation
var ErrInvalid = errors.New("invalid config")

// Default scene tuning values
const (
	DefaultGustInterval   = 4 * time.Second
	DefaultSwirlThreshold = 0.6
	DefaultPatchCount     = 35
	DefaultPositionJitter = 2.5
	DefaultMusic          = "music.mp3"
	DefaultVolume         = 0.5
	DefaultHintFade       = 500 * time.Millisecond
	DefaultFrameRate      = 30
)

// DefaultTextures are the patch textures, chosen uniformly per patch
var DefaultTextures = []string{
	"foreground_flowers.png",
	"tulip_red.png",
	"tulip_yellow.png",
}

// DefaultCard is the message revealed by the special flower
var DefaultCard = []string{
	"For you",
	"",
	"May your days bloom",
	"as gently as this garden.",
}

// SceneConfig holds the tunable constants of the wind garden scene
type SceneConfig struct {
	GustInterval   time.Duration `yaml:"gustInterval"`   // Timer period between gusts
	SwirlThreshold float64       `yaml:"swirlThreshold"` // Draws above this produce a swirl
	PatchCount     int           `yaml:"patchCount"`     // Number of background flower patches
	PositionJitter float64       `yaml:"positionJitter"` // +/- percent applied to each base position
	Textures       []string      `yaml:"textures"`       // Patch texture identifiers

	Music    string        `yaml:"music"`    // Looping music file
	Volume   float64       `yaml:"volume"`   // 0.0 ~ 1.0
	Autoplay *bool         `yaml:"autoplay"` // false simulates a host that rejects autoplay
	HintFade time.Duration `yaml:"hintFade"` // Hint fade-out before removal
	Card     []string      `yaml:"card"`     // Lines of the revealed card

	FrameRate int    `yaml:"frameRate"` // UI frames per second
	Database  string `yaml:"database"`  // Session journal path, empty for the default, "-" disables it
}

// Default returns the scene configuration with every field at its default
func Default() *SceneConfig {
	cfg := &SceneConfig{}
	applyDefaults(cfg, nil)
	return cfg
}

// Load reads a YAML scene config. A missing file yields the defaults.
func Load(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data, applies defaults and validates the result
func Parse(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Decoded again to tell an explicit zero from a missing key
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	applyDefaults(&cfg, keys)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AutoplayEnabled reports whether music should start without a user click
func (c *SceneConfig) AutoplayEnabled() bool {
	return c.Autoplay == nil || *c.Autoplay
}

// JournalEnabled reports whether sessions are recorded
func (c *SceneConfig) JournalEnabled() bool {
	return c.Database != "-"
}

// applyDefaults fills unset fields. Zero counts as unset, except for the
// fields where zero is meaningful: those keep an explicit zero from keys.
func applyDefaults(cfg *SceneConfig, keys map[string]yaml.Node) {
	unset := func(key string) bool {
		_, ok := keys[key]
		return !ok
	}

	if cfg.GustInterval == 0 {
		cfg.GustInterval = DefaultGustInterval
	}
	if cfg.SwirlThreshold == 0 && unset("swirlThreshold") {
		cfg.SwirlThreshold = DefaultSwirlThreshold
	}
	if cfg.PatchCount == 0 {
		cfg.PatchCount = DefaultPatchCount
	}
	if cfg.PositionJitter == 0 && unset("positionJitter") {
		cfg.PositionJitter = DefaultPositionJitter
	}
	if len(cfg.Textures) == 0 {
		cfg.Textures = append([]string(nil), DefaultTextures...)
	}
	if cfg.Music == "" {
		cfg.Music = DefaultMusic
	}
	if cfg.Volume == 0 && unset("volume") {
		cfg.Volume = DefaultVolume
	}
	if cfg.HintFade == 0 && unset("hintFade") {
		cfg.HintFade = DefaultHintFade
	}
	if cfg.FrameRate == 0 {
		cfg.FrameRate = DefaultFrameRate
	}
	if len(cfg.Card) == 0 {
		cfg.Card = append([]string(nil), DefaultCard...)
	}
}

func validate(cfg *SceneConfig) error {
	if cfg.GustInterval < 0 {
		return fmt.Errorf("%w: gustInterval must be positive, got %v", ErrInvalid, cfg.GustInterval)
	}
	if cfg.SwirlThreshold < 0 || cfg.SwirlThreshold > 1 {
		return fmt.Errorf("%w: swirlThreshold out of range 0-1 (got %.2f)", ErrInvalid, cfg.SwirlThreshold)
	}
	if cfg.PatchCount < 0 {
		return fmt.Errorf("%w: patchCount must be positive, got %d", ErrInvalid, cfg.PatchCount)
	}
	if cfg.PositionJitter < 0 {
		return fmt.Errorf("%w: positionJitter must not be negative, got %.2f", ErrInvalid, cfg.PositionJitter)
	}
	for i, tex := range cfg.Textures {
		if tex == "" {
			return fmt.Errorf("%w: textures[%d] is empty", ErrInvalid, i)
		}
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return fmt.Errorf("%w: volume out of range 0-1 (got %.2f)", ErrInvalid, cfg.Volume)
	}
	if cfg.HintFade < 0 {
		return fmt.Errorf("%w: hintFade must not be negative, got %v", ErrInvalid, cfg.HintFade)
	}
	if cfg.FrameRate < 1 || cfg.FrameRate > 120 {
		return fmt.Errorf("%w: frameRate out of range 1-120 (got %d)", ErrInvalid, cfg.FrameRate)
	}
	return nil
}
