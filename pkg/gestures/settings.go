package gestures

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML values like "250ms" or "1.5s"; a bare number is
// read as milliseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if parsed, err := time.ParseDuration(value.Value); err == nil {
		*d = Duration(parsed)
		return nil
	}
	var millis float64
	if err := value.Decode(&millis); err != nil {
		return fmt.Errorf("gestures: invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(millis * float64(time.Millisecond)))
	return nil
}

// Settings tunes the recognizers' thresholds. The zero value of any field
// falls back to the package default, so a partially specified config file
// works. Recognizers hold a *Settings; a nil pointer means all defaults.
type Settings struct {
	TouchSlop        float32  `yaml:"touch_slop"`
	DoubleTapTimeout Duration `yaml:"double_tap_timeout"`
	DoubleTapSlop    float32  `yaml:"double_tap_slop"`
	MinFlingVelocity float32  `yaml:"min_fling_velocity"`
	MaxFlingVelocity float32  `yaml:"max_fling_velocity"`
}

// DefaultSettings returns the package defaults as an explicit value.
func DefaultSettings() Settings {
	return Settings{
		TouchSlop:        DefaultTouchSlop,
		DoubleTapTimeout: Duration(DoubleTapTimeout),
		DoubleTapSlop:    DoubleTapSlop,
		MinFlingVelocity: MinFlingVelocity,
		MaxFlingVelocity: MaxFlingVelocity,
	}
}

// ParseSettings reads Settings from YAML, validating the result.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("gestures: parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects negative thresholds.
func (s Settings) Validate() error {
	if s.TouchSlop < 0 || s.DoubleTapSlop < 0 || s.MinFlingVelocity < 0 ||
		s.MaxFlingVelocity < 0 || s.DoubleTapTimeout < 0 {
		return fmt.Errorf("gestures: negative threshold in settings %+v", s)
	}
	return nil
}

func (s *Settings) touchSlop() float32 {
	if s == nil || s.TouchSlop == 0 {
		return DefaultTouchSlop
	}
	return s.TouchSlop
}

func (s *Settings) doubleTapTimeout() time.Duration {
	if s == nil || s.DoubleTapTimeout == 0 {
		return DoubleTapTimeout
	}
	return time.Duration(s.DoubleTapTimeout)
}

func (s *Settings) doubleTapSlop() float32 {
	if s == nil || s.DoubleTapSlop == 0 {
		return DoubleTapSlop
	}
	return s.DoubleTapSlop
}

func (s *Settings) minFlingVelocity() float32 {
	if s == nil || s.MinFlingVelocity == 0 {
		return MinFlingVelocity
	}
	return s.MinFlingVelocity
}

func (s *Settings) maxFlingVelocity() float32 {
	if s == nil || s.MaxFlingVelocity == 0 {
		return MaxFlingVelocity
	}
	return s.MaxFlingVelocity
}
