package engagement

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Regime is the growth profile applied for one simulated interval.
type Regime struct {
	Chance   float64 `yaml:"chance"`
	MinViews int     `yaml:"minViews"`
	MaxViews int     `yaml:"maxViews"`
}

// Tuning holds every constant of the engagement simulator.
type Tuning struct {
	Interval time.Duration `yaml:"interval"`

	GraceWindow  time.Duration `yaml:"graceWindow"`
	NormalWindow time.Duration `yaml:"normalWindow"`
	ViralWindow  time.Duration `yaml:"viralWindow"`

	Grace         Regime `yaml:"grace"`
	Normal        Regime `yaml:"normal"`
	Stabilization Regime `yaml:"stabilization"`
	Viral         Regime `yaml:"viral"`

	LikeChance  float64 `yaml:"likeChance"`
	FireChance  float64 `yaml:"fireChance"`
	BoostFactor float64 `yaml:"boostFactor"`

	ViewsPerMilestone int `yaml:"viewsPerMilestone"`
	MaxMilestone      int `yaml:"maxMilestone"`
}

// DefaultTuning returns the stock growth model.
func DefaultTuning() Tuning {
	return Tuning{
		Interval:          time.Minute,
		GraceWindow:       10 * time.Minute,
		NormalWindow:      time.Hour,
		ViralWindow:       3 * time.Hour,
		Grace:             Regime{Chance: 0.6, MinViews: 0, MaxViews: 2},
		Normal:            Regime{Chance: 0.8, MinViews: 1, MaxViews: 6},
		Stabilization:     Regime{Chance: 0.3, MinViews: 0, MaxViews: 2},
		Viral:             Regime{Chance: 0.95, MinViews: 20, MaxViews: 80},
		LikeChance:        0.15,
		FireChance:        0.05,
		BoostFactor:       0.05,
		ViewsPerMilestone: 1000,
		MaxMilestone:      15,
	}
}

// LoadTuning reads tuning from a YAML file on top of DefaultTuning.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML tuning on top of DefaultTuning and validates it.
func ParseTuning(data []byte) (Tuning, error) {
	tuning := DefaultTuning()
	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &tuning); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse YAML tuning: %w", err)
	}

	if err := tuning.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return tuning, nil
}

// Validate checks windows, probabilities and view ranges.
func (t Tuning) Validate() error {
	if t.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", t.Interval)
	}
	if t.GraceWindow < 0 || t.NormalWindow < t.GraceWindow {
		return fmt.Errorf("normalWindow (%s) must not be shorter than graceWindow (%s)", t.NormalWindow, t.GraceWindow)
	}
	if t.ViralWindow < t.GraceWindow {
		return fmt.Errorf("viralWindow (%s) must not be shorter than graceWindow (%s)", t.ViralWindow, t.GraceWindow)
	}

	regimes := map[string]Regime{
		"grace":         t.Grace,
		"normal":        t.Normal,
		"stabilization": t.Stabilization,
		"viral":         t.Viral,
	}
	for name, r := range regimes {
		if err := validChance(name+".chance", r.Chance); err != nil {
			return err
		}
		if r.MinViews < 0 || r.MaxViews < r.MinViews {
			return fmt.Errorf("%s views range [%d, %d] is invalid", name, r.MinViews, r.MaxViews)
		}
	}

	if err := validChance("likeChance", t.LikeChance); err != nil {
		return err
	}
	if err := validChance("fireChance", t.FireChance); err != nil {
		return err
	}
	if t.BoostFactor < 0 {
		return fmt.Errorf("boostFactor must not be negative, got %v", t.BoostFactor)
	}
	if t.ViewsPerMilestone <= 0 {
		return fmt.Errorf("viewsPerMilestone must be positive, got %d", t.ViewsPerMilestone)
	}
	if t.MaxMilestone < 0 {
		return fmt.Errorf("maxMilestone must not be negative, got %d", t.MaxMilestone)
	}
	return nil
}

func validChance(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		name, fallback, _ := strings.Cut(key, ":")
		if value := os.Getenv(name); value != "" {
			return value
		}
		return fallback
	})
}
