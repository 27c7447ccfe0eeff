// Package config provides the two-tier configuration subsystem of the
// pixelpilot toolkit: a process-wide registry of operational parameters
// and backend selectors, temporary scoped overrides of that registry,
// and a per-consumer container for backend configuration.
package config

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry is a process-wide, mutable store of named operational
// parameters and backend-selector strings. Every write is validated
// against the setting's kind and domain and becomes immediately visible
// to all readers. A Registry is safe for concurrent use.
//
// The registry is explicitly constructed so tests and embedders can hold
// isolated instances; Global is the instance shared across the toolkit.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
	logger *slog.Logger
}

// Global is the registry shared between all toolkit instances in the
// process. It starts out with the documented defaults.
var Global = NewRegistry(nil)

// NewRegistry creates a registry seeded with the default value of every
// setting. If logger is nil, slog.Default() is used.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	values := make(map[string]any, len(settings))
	for _, s := range settings {
		values[s.Name] = s.Default
	}
	return &Registry{values: values, logger: logger}
}

// Get returns the current value of the named setting.
func (r *Registry) Get(name string) (any, error) {
	if _, ok := settingsByName[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name], nil
}

// Set validates value against the named setting's kind and domain and
// stores it. The write is visible to every reader as soon as Set returns.
func (r *Registry) Set(name string, value any) error {
	spec, ok := settingsByName[name]
	if !ok {
		recordWriteFailure(name, failureUnknownSetting)
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	stored, err := spec.normalize(value)
	if err != nil {
		recordWriteFailure(name, failureReason(err))
		return err
	}

	r.mu.Lock()
	r.values[name] = stored
	r.mu.Unlock()

	recordWrite(name)
	r.logger.Debug("Setting updated", "setting", name, "value", stored)
	return nil
}

// Scoped runs fn with a temporary view of the registry and restores every
// setting fn touched once fn returns, whether it succeeded, failed, or
// panicked. The error from fn is returned unchanged.
func (r *Registry) Scoped(fn func(*Temporary) error) error {
	tmp := NewTemporary(r)
	defer tmp.Restore()
	return fn(tmp)
}

// Typed read helpers. The stored representation is canonical for the
// setting's kind, so the assertions cannot fail for known names.

func (r *Registry) duration(name string) time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name].(time.Duration)
}

func (r *Registry) boolean(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name].(bool)
}

func (r *Registry) integer(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name].(int)
}

func (r *Registry) text(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name].(string)
}

// ToggleDelay returns the time interval between mouse down and up in a click.
func (r *Registry) ToggleDelay() time.Duration { return r.duration(SettingToggleDelay) }

// SetToggleDelay sets the time interval between mouse down and up in a click.
func (r *Registry) SetToggleDelay(d time.Duration) error { return r.Set(SettingToggleDelay, d) }

// ClickDelay returns the time interval after a click in a double or n-click.
func (r *Registry) ClickDelay() time.Duration { return r.duration(SettingClickDelay) }

// SetClickDelay sets the time interval after a click in a double or n-click.
func (r *Registry) SetClickDelay(d time.Duration) error { return r.Set(SettingClickDelay, d) }

// DelayAfterDrag returns the timeout before the drag operation.
func (r *Registry) DelayAfterDrag() time.Duration { return r.duration(SettingDelayAfterDrag) }

// SetDelayAfterDrag sets the timeout before the drag operation.
func (r *Registry) SetDelayAfterDrag(d time.Duration) error { return r.Set(SettingDelayAfterDrag, d) }

// DelayBeforeDrop returns the timeout before the drop operation.
func (r *Registry) DelayBeforeDrop() time.Duration { return r.duration(SettingDelayBeforeDrop) }

// SetDelayBeforeDrop sets the timeout before the drop operation.
func (r *Registry) SetDelayBeforeDrop(d time.Duration) error { return r.Set(SettingDelayBeforeDrop, d) }

// DelayBeforeKeys returns the timeout before a key press operation.
func (r *Registry) DelayBeforeKeys() time.Duration { return r.duration(SettingDelayBeforeKeys) }

// SetDelayBeforeKeys sets the timeout before a key press operation.
func (r *Registry) SetDelayBeforeKeys(d time.Duration) error { return r.Set(SettingDelayBeforeKeys, d) }

// DelayBetweenKeys returns the time interval between two consecutively typed keys.
func (r *Registry) DelayBetweenKeys() time.Duration { return r.duration(SettingDelayBetweenKeys) }

// SetDelayBetweenKeys sets the time interval between two consecutively typed keys.
func (r *Registry) SetDelayBetweenKeys(d time.Duration) error {
	return r.Set(SettingDelayBetweenKeys, d)
}

// RescanSpeedOnFind returns the time interval between two matching attempts,
// used to reduce CPU overhead while waiting for a target to appear.
func (r *Registry) RescanSpeedOnFind() time.Duration { return r.duration(SettingRescanSpeedOnFind) }

// SetRescanSpeedOnFind sets the time interval between two matching attempts.
func (r *Registry) SetRescanSpeedOnFind(d time.Duration) error {
	return r.Set(SettingRescanSpeedOnFind, d)
}

// WaitForAnimations reports whether matching waits for animations to
// complete and considers only static targets. Useful in highly animated
// environments where clicking a moving target is inappropriate.
func (r *Registry) WaitForAnimations() bool { return r.boolean(SettingWaitForAnimations) }

// SetWaitForAnimations sets whether matching waits for animations to complete.
func (r *Registry) SetWaitForAnimations(v bool) error { return r.Set(SettingWaitForAnimations, v) }

// SmoothMouseDrag reports whether the mouse cursor moves to a location
// smoothly rather than jumping there instantly.
func (r *Registry) SmoothMouseDrag() bool { return r.boolean(SettingSmoothMouseDrag) }

// SetSmoothMouseDrag sets whether the mouse cursor moves smoothly.
func (r *Registry) SetSmoothMouseDrag(v bool) error { return r.Set(SettingSmoothMouseDrag, v) }

// ScreenAutoconnect reports whether a screen connection is established on startup.
func (r *Registry) ScreenAutoconnect() bool { return r.boolean(SettingScreenAutoconnect) }

// SetScreenAutoconnect sets whether a screen connection is established on startup.
func (r *Registry) SetScreenAutoconnect(v bool) error { return r.Set(SettingScreenAutoconnect, v) }

// PreprocessSpecialChars reports whether capital and special characters
// are preprocessed and handled internally. Forced for some display
// control backends that cannot type them directly.
func (r *Registry) PreprocessSpecialChars() bool { return r.boolean(SettingPreprocessSpecialChars) }

// SetPreprocessSpecialChars sets whether capital and special characters are preprocessed.
func (r *Registry) SetPreprocessSpecialChars(v bool) error {
	return r.Set(SettingPreprocessSpecialChars, v)
}

// SaveNeedleOnError reports whether an extra needle dump is performed on matching error.
func (r *Registry) SaveNeedleOnError() bool { return r.boolean(SettingSaveNeedleOnError) }

// SetSaveNeedleOnError sets whether an extra needle dump is performed on matching error.
func (r *Registry) SetSaveNeedleOnError(v bool) error { return r.Set(SettingSaveNeedleOnError, v) }

// ImageLoggingLevel returns the level threshold for image logging,
// following slog level numbering.
func (r *Registry) ImageLoggingLevel() int { return r.integer(SettingImageLoggingLevel) }

// SetImageLoggingLevel sets the level threshold for image logging.
func (r *Registry) SetImageLoggingLevel(v int) error { return r.Set(SettingImageLoggingLevel, v) }

// ImageLoggingStepWidth returns the number of digits used to enumerate
// image logging steps, e.g. 3 for 001, 002.
func (r *Registry) ImageLoggingStepWidth() int { return r.integer(SettingImageLoggingStepWidth) }

// SetImageLoggingStepWidth sets the number of digits used to enumerate steps.
func (r *Registry) SetImageLoggingStepWidth(v int) error {
	return r.Set(SettingImageLoggingStepWidth, v)
}

// ImageQuality returns the compression level for image dumps, 0 for none
// to 9 for maximum.
func (r *Registry) ImageQuality() int { return r.integer(SettingImageQuality) }

// SetImageQuality sets the compression level for image dumps.
func (r *Registry) SetImageQuality(v int) error { return r.Set(SettingImageQuality, v) }

// ImageLoggingDestination returns the relative path for image logging steps.
func (r *Registry) ImageLoggingDestination() string { return r.text(SettingImageLoggingDestination) }

// SetImageLoggingDestination sets the relative path for image logging steps.
func (r *Registry) SetImageLoggingDestination(v string) error {
	return r.Set(SettingImageLoggingDestination, v)
}

// DisplayControlBackend returns the name of the display control backend.
func (r *Registry) DisplayControlBackend() string { return r.text(SettingDisplayControlBackend) }

// SetDisplayControlBackend sets the display control backend. The name
// must be one of DisplayControlBackends.
func (r *Registry) SetDisplayControlBackend(v string) error {
	return r.Set(SettingDisplayControlBackend, v)
}

// The remaining backend-name settings are free-form: their validity is
// checked during region and target initialization, not here.

// FindBackend returns the name of the computer vision backend.
func (r *Registry) FindBackend() string { return r.text(SettingFindBackend) }

// SetFindBackend sets the name of the computer vision backend.
func (r *Registry) SetFindBackend(v string) error { return r.Set(SettingFindBackend, v) }

// ContourThresholdBackend returns the name of the contour threshold backend.
func (r *Registry) ContourThresholdBackend() string { return r.text(SettingContourThresholdBackend) }

// SetContourThresholdBackend sets the name of the contour threshold backend.
func (r *Registry) SetContourThresholdBackend(v string) error {
	return r.Set(SettingContourThresholdBackend, v)
}

// TemplateMatchBackend returns the name of the template matching backend.
func (r *Registry) TemplateMatchBackend() string { return r.text(SettingTemplateMatchBackend) }

// SetTemplateMatchBackend sets the name of the template matching backend.
func (r *Registry) SetTemplateMatchBackend(v string) error {
	return r.Set(SettingTemplateMatchBackend, v)
}

// FeatureDetectBackend returns the name of the feature detection backend.
func (r *Registry) FeatureDetectBackend() string { return r.text(SettingFeatureDetectBackend) }

// SetFeatureDetectBackend sets the name of the feature detection backend.
func (r *Registry) SetFeatureDetectBackend(v string) error {
	return r.Set(SettingFeatureDetectBackend, v)
}

// FeatureExtractBackend returns the name of the feature extraction backend.
func (r *Registry) FeatureExtractBackend() string { return r.text(SettingFeatureExtractBackend) }

// SetFeatureExtractBackend sets the name of the feature extraction backend.
func (r *Registry) SetFeatureExtractBackend(v string) error {
	return r.Set(SettingFeatureExtractBackend, v)
}

// FeatureMatchBackend returns the name of the feature matching backend.
func (r *Registry) FeatureMatchBackend() string { return r.text(SettingFeatureMatchBackend) }

// SetFeatureMatchBackend sets the name of the feature matching backend.
func (r *Registry) SetFeatureMatchBackend(v string) error {
	return r.Set(SettingFeatureMatchBackend, v)
}

// TextDetectBackend returns the name of the text detection backend.
func (r *Registry) TextDetectBackend() string { return r.text(SettingTextDetectBackend) }

// SetTextDetectBackend sets the name of the text detection backend.
func (r *Registry) SetTextDetectBackend(v string) error { return r.Set(SettingTextDetectBackend, v) }

// TextOCRBackend returns the name of the optical character recognition backend.
func (r *Registry) TextOCRBackend() string { return r.text(SettingTextOCRBackend) }

// SetTextOCRBackend sets the name of the optical character recognition backend.
func (r *Registry) SetTextOCRBackend(v string) error { return r.Set(SettingTextOCRBackend, v) }

// DeepLearnBackend returns the name of the deep learning backend.
func (r *Registry) DeepLearnBackend() string { return r.text(SettingDeepLearnBackend) }

// SetDeepLearnBackend sets the name of the deep learning backend.
func (r *Registry) SetDeepLearnBackend(v string) error { return r.Set(SettingDeepLearnBackend, v) }

// HybridMatchBackend returns the name of the hybrid matching backend used
// for unconfigured one-step targets.
func (r *Registry) HybridMatchBackend() string { return r.text(SettingHybridMatchBackend) }

// SetHybridMatchBackend sets the name of the hybrid matching backend.
func (r *Registry) SetHybridMatchBackend(v string) error { return r.Set(SettingHybridMatchBackend, v) }
