package config

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Kind enumerates the value kinds a setting can hold.
type Kind int

// Setting value kinds.
const (
	KindDuration Kind = iota
	KindBool
	KindInt
	KindString
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDuration:
		return "duration"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Setting names accepted by Registry.Get and Registry.Set. The typed
// accessors on Registry cover the same surface; the names exist for
// keyed access from overlays and temporary scopes.
const (
	SettingToggleDelay             = "toggle_delay"
	SettingClickDelay              = "click_delay"
	SettingDelayAfterDrag          = "delay_after_drag"
	SettingDelayBeforeDrop         = "delay_before_drop"
	SettingDelayBeforeKeys         = "delay_before_keys"
	SettingDelayBetweenKeys        = "delay_between_keys"
	SettingRescanSpeedOnFind       = "rescan_speed_on_find"
	SettingWaitForAnimations       = "wait_for_animations"
	SettingSmoothMouseDrag         = "smooth_mouse_drag"
	SettingScreenAutoconnect       = "screen_autoconnect"
	SettingPreprocessSpecialChars  = "preprocess_special_chars"
	SettingSaveNeedleOnError       = "save_needle_on_error"
	SettingImageLoggingLevel       = "image_logging_level"
	SettingImageLoggingStepWidth   = "image_logging_step_width"
	SettingImageQuality            = "image_quality"
	SettingImageLoggingDestination = "image_logging_destination"
	SettingDisplayControlBackend   = "display_control_backend"
	SettingFindBackend             = "find_backend"
	SettingContourThresholdBackend = "contour_threshold_backend"
	SettingTemplateMatchBackend    = "template_match_backend"
	SettingFeatureDetectBackend    = "feature_detect_backend"
	SettingFeatureExtractBackend   = "feature_extract_backend"
	SettingFeatureMatchBackend     = "feature_match_backend"
	SettingTextDetectBackend       = "text_detect_backend"
	SettingTextOCRBackend          = "text_ocr_backend"
	SettingDeepLearnBackend        = "deep_learn_backend"
	SettingHybridMatchBackend      = "hybrid_match_backend"
)

// DisplayControlBackends is the fixed set of admissible display control
// backend names. All other backend-name settings are free-form; their
// validity is checked by the consumer that instantiates the backend.
var DisplayControlBackends = []string{"autopy", "xdotool", "vncdotool", "qemu", "pyautogui"}

// Setting describes one named operational parameter: its value kind, its
// default, and, for string settings with a fixed admissible set, the
// legal values.
type Setting struct {
	Name    string
	Kind    Kind
	Default any
	Domain  []string
}

// settings is the full table of operational parameters shared between all
// toolkit instances. The registry is seeded from this table and never
// grows or shrinks afterwards.
var settings = []Setting{
	{Name: SettingToggleDelay, Kind: KindDuration, Default: 50 * time.Millisecond},
	{Name: SettingClickDelay, Kind: KindDuration, Default: 100 * time.Millisecond},
	{Name: SettingDelayAfterDrag, Kind: KindDuration, Default: 500 * time.Millisecond},
	{Name: SettingDelayBeforeDrop, Kind: KindDuration, Default: 500 * time.Millisecond},
	{Name: SettingDelayBeforeKeys, Kind: KindDuration, Default: 200 * time.Millisecond},
	{Name: SettingDelayBetweenKeys, Kind: KindDuration, Default: 100 * time.Millisecond},
	{Name: SettingRescanSpeedOnFind, Kind: KindDuration, Default: 200 * time.Millisecond},
	{Name: SettingWaitForAnimations, Kind: KindBool, Default: false},
	{Name: SettingSmoothMouseDrag, Kind: KindBool, Default: true},
	{Name: SettingScreenAutoconnect, Kind: KindBool, Default: true},
	{Name: SettingPreprocessSpecialChars, Kind: KindBool, Default: true},
	{Name: SettingSaveNeedleOnError, Kind: KindBool, Default: true},
	{Name: SettingImageLoggingLevel, Kind: KindInt, Default: int(slog.LevelError)},
	{Name: SettingImageLoggingStepWidth, Kind: KindInt, Default: 3},
	{Name: SettingImageQuality, Kind: KindInt, Default: 3},
	{Name: SettingImageLoggingDestination, Kind: KindString, Default: "imglog"},
	{Name: SettingDisplayControlBackend, Kind: KindString, Default: "pyautogui", Domain: DisplayControlBackends},
	{Name: SettingFindBackend, Kind: KindString, Default: "hybrid"},
	{Name: SettingContourThresholdBackend, Kind: KindString, Default: "adaptive"},
	{Name: SettingTemplateMatchBackend, Kind: KindString, Default: "ccoeff_normed"},
	{Name: SettingFeatureDetectBackend, Kind: KindString, Default: "ORB"},
	{Name: SettingFeatureExtractBackend, Kind: KindString, Default: "ORB"},
	{Name: SettingFeatureMatchBackend, Kind: KindString, Default: "BruteForce-Hamming"},
	{Name: SettingTextDetectBackend, Kind: KindString, Default: "contours"},
	{Name: SettingTextOCRBackend, Kind: KindString, Default: "pytesseract"},
	{Name: SettingDeepLearnBackend, Kind: KindString, Default: "pytorch"},
	{Name: SettingHybridMatchBackend, Kind: KindString, Default: "template"},
}

// settingsByName indexes the setting table for keyed access.
var settingsByName = func() map[string]Setting {
	byName := make(map[string]Setting, len(settings))
	for _, s := range settings {
		byName[s.Name] = s
	}
	return byName
}()

// Settings returns a copy of the full setting table.
func Settings() []Setting {
	out := make([]Setting, len(settings))
	copy(out, settings)
	return out
}

// normalize validates value against the setting's kind and domain and
// returns the canonical stored representation.
func (s Setting) normalize(value any) (any, error) {
	switch s.Kind {
	case KindDuration:
		d, err := coerceDuration(value)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidValue, s.Name, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%w %q: negative duration %s", ErrInvalidValue, s.Name, d)
		}
		return d, nil
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w %q: expected bool, got %T", ErrInvalidValue, s.Name, value)
		}
		return b, nil
	case KindInt:
		switch n := value.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		default:
			return nil, fmt.Errorf("%w %q: expected int, got %T", ErrInvalidValue, s.Name, value)
		}
	case KindString:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w %q: expected string, got %T", ErrInvalidValue, s.Name, value)
		}
		if len(s.Domain) > 0 && !slices.Contains(s.Domain, str) {
			return nil, fmt.Errorf("%w %q for setting %q: supported ones are %v",
				ErrUnsupportedBackend, str, s.Name, s.Domain)
		}
		return str, nil
	default:
		return nil, fmt.Errorf("%w %q: unknown kind", ErrInvalidValue, s.Name)
	}
}

// coerceDuration accepts the duration spellings an overlay file or a
// caller may use: a time.Duration, a time.ParseDuration string, or a
// number of seconds.
func coerceDuration(value any) (time.Duration, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		return time.ParseDuration(v)
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	default:
		return 0, fmt.Errorf("expected duration, got %T", value)
	}
}
