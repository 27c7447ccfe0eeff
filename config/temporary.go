package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Temporary proxies a Registry for the duration of a bounded operation
// sequence. Writes go straight to the underlying registry, but the value
// observed before the first write to each setting is recorded, and
// Restore puts every recorded value back. Reads always see the live
// registry state.
//
// Two temporaries opened against the same registry share its state: the
// inner scope restores the value the outer scope most recently set, not
// the process default. That is the documented behavior of nested scopes,
// not a defect.
type Temporary struct {
	reg     *Registry
	scopeID string
	logger  *slog.Logger

	mu       sync.Mutex
	original map[string]any
}

// NewTemporary opens a temporary view of reg. Call Restore (usually
// deferred) to undo every write made through the view; Registry.Scoped
// does this automatically.
func NewTemporary(reg *Registry) *Temporary {
	t := &Temporary{
		reg:      reg,
		scopeID:  uuid.NewString()[:8],
		logger:   reg.logger,
		original: make(map[string]any),
	}
	t.logger.Debug("Temporary config scope opened", "scope", t.scopeID)
	return t
}

// Get reads the current value of the named setting from the underlying
// registry. Overrides are applied in place, so this sees them too.
func (t *Temporary) Get(name string) (any, error) {
	return t.reg.Get(name)
}

// Set records the registry's current value for name, if this is the
// first write to name within the scope, and then writes value through to
// the registry under the same validation rules as a direct write.
func (t *Temporary) Set(name string, value any) error {
	t.mu.Lock()
	if _, seen := t.original[name]; !seen {
		current, err := t.reg.Get(name)
		if err != nil {
			t.mu.Unlock()
			return err
		}
		t.original[name] = current
	}
	t.mu.Unlock()

	return t.reg.Set(name, value)
}

// Restore writes every recorded original value back to the registry and
// clears the record, leaving the registry exactly as it was for every
// setting touched through this scope. The Temporary is inert afterwards
// and may be reused as a fresh scope.
//
// The restored values already passed validation once, so failures are
// not expected; any that do occur are joined and returned.
func (t *Temporary) Restore() error {
	t.mu.Lock()
	original := t.original
	t.original = make(map[string]any)
	t.mu.Unlock()

	var errs []error
	for name, value := range original {
		if err := t.reg.Set(name, value); err != nil {
			errs = append(errs, fmt.Errorf("restore %q: %w", name, err))
		}
	}
	if len(original) > 0 {
		recordScopeRestore()
	}
	t.logger.Debug("Temporary config scope restored", "scope", t.scopeID, "settings", len(original))
	return errors.Join(errs...)
}

// The typed accessors mirror the Registry surface: getters delegate
// directly, setters record the original value before delegating.

// ToggleDelay returns the time interval between mouse down and up in a click.
func (t *Temporary) ToggleDelay() time.Duration { return t.reg.ToggleDelay() }

// SetToggleDelay overrides the time interval between mouse down and up in a click.
func (t *Temporary) SetToggleDelay(d time.Duration) error { return t.Set(SettingToggleDelay, d) }

// ClickDelay returns the time interval after a click in a double or n-click.
func (t *Temporary) ClickDelay() time.Duration { return t.reg.ClickDelay() }

// SetClickDelay overrides the time interval after a click in a double or n-click.
func (t *Temporary) SetClickDelay(d time.Duration) error { return t.Set(SettingClickDelay, d) }

// DelayAfterDrag returns the timeout before the drag operation.
func (t *Temporary) DelayAfterDrag() time.Duration { return t.reg.DelayAfterDrag() }

// SetDelayAfterDrag overrides the timeout before the drag operation.
func (t *Temporary) SetDelayAfterDrag(d time.Duration) error { return t.Set(SettingDelayAfterDrag, d) }

// DelayBeforeDrop returns the timeout before the drop operation.
func (t *Temporary) DelayBeforeDrop() time.Duration { return t.reg.DelayBeforeDrop() }

// SetDelayBeforeDrop overrides the timeout before the drop operation.
func (t *Temporary) SetDelayBeforeDrop(d time.Duration) error {
	return t.Set(SettingDelayBeforeDrop, d)
}

// DelayBeforeKeys returns the timeout before a key press operation.
func (t *Temporary) DelayBeforeKeys() time.Duration { return t.reg.DelayBeforeKeys() }

// SetDelayBeforeKeys overrides the timeout before a key press operation.
func (t *Temporary) SetDelayBeforeKeys(d time.Duration) error {
	return t.Set(SettingDelayBeforeKeys, d)
}

// DelayBetweenKeys returns the time interval between two consecutively typed keys.
func (t *Temporary) DelayBetweenKeys() time.Duration { return t.reg.DelayBetweenKeys() }

// SetDelayBetweenKeys overrides the time interval between two consecutively typed keys.
func (t *Temporary) SetDelayBetweenKeys(d time.Duration) error {
	return t.Set(SettingDelayBetweenKeys, d)
}

// RescanSpeedOnFind returns the time interval between two matching attempts.
func (t *Temporary) RescanSpeedOnFind() time.Duration { return t.reg.RescanSpeedOnFind() }

// SetRescanSpeedOnFind overrides the time interval between two matching attempts.
func (t *Temporary) SetRescanSpeedOnFind(d time.Duration) error {
	return t.Set(SettingRescanSpeedOnFind, d)
}

// WaitForAnimations reports whether matching considers only static targets.
func (t *Temporary) WaitForAnimations() bool { return t.reg.WaitForAnimations() }

// SetWaitForAnimations overrides whether matching considers only static targets.
func (t *Temporary) SetWaitForAnimations(v bool) error { return t.Set(SettingWaitForAnimations, v) }

// SmoothMouseDrag reports whether the mouse cursor moves smoothly.
func (t *Temporary) SmoothMouseDrag() bool { return t.reg.SmoothMouseDrag() }

// SetSmoothMouseDrag overrides whether the mouse cursor moves smoothly.
func (t *Temporary) SetSmoothMouseDrag(v bool) error { return t.Set(SettingSmoothMouseDrag, v) }

// ScreenAutoconnect reports whether a screen connection is established on startup.
func (t *Temporary) ScreenAutoconnect() bool { return t.reg.ScreenAutoconnect() }

// SetScreenAutoconnect overrides whether a screen connection is established on startup.
func (t *Temporary) SetScreenAutoconnect(v bool) error { return t.Set(SettingScreenAutoconnect, v) }

// PreprocessSpecialChars reports whether capital and special characters are preprocessed.
func (t *Temporary) PreprocessSpecialChars() bool { return t.reg.PreprocessSpecialChars() }

// SetPreprocessSpecialChars overrides whether capital and special characters are preprocessed.
func (t *Temporary) SetPreprocessSpecialChars(v bool) error {
	return t.Set(SettingPreprocessSpecialChars, v)
}

// SaveNeedleOnError reports whether an extra needle dump is performed on matching error.
func (t *Temporary) SaveNeedleOnError() bool { return t.reg.SaveNeedleOnError() }

// SetSaveNeedleOnError overrides whether an extra needle dump is performed on matching error.
func (t *Temporary) SetSaveNeedleOnError(v bool) error { return t.Set(SettingSaveNeedleOnError, v) }

// ImageLoggingLevel returns the level threshold for image logging.
func (t *Temporary) ImageLoggingLevel() int { return t.reg.ImageLoggingLevel() }

// SetImageLoggingLevel overrides the level threshold for image logging.
func (t *Temporary) SetImageLoggingLevel(v int) error { return t.Set(SettingImageLoggingLevel, v) }

// ImageLoggingStepWidth returns the number of digits used to enumerate steps.
func (t *Temporary) ImageLoggingStepWidth() int { return t.reg.ImageLoggingStepWidth() }

// SetImageLoggingStepWidth overrides the number of digits used to enumerate steps.
func (t *Temporary) SetImageLoggingStepWidth(v int) error {
	return t.Set(SettingImageLoggingStepWidth, v)
}

// ImageQuality returns the compression level for image dumps.
func (t *Temporary) ImageQuality() int { return t.reg.ImageQuality() }

// SetImageQuality overrides the compression level for image dumps.
func (t *Temporary) SetImageQuality(v int) error { return t.Set(SettingImageQuality, v) }

// ImageLoggingDestination returns the relative path for image logging steps.
func (t *Temporary) ImageLoggingDestination() string { return t.reg.ImageLoggingDestination() }

// SetImageLoggingDestination overrides the relative path for image logging steps.
func (t *Temporary) SetImageLoggingDestination(v string) error {
	return t.Set(SettingImageLoggingDestination, v)
}

// DisplayControlBackend returns the name of the display control backend.
func (t *Temporary) DisplayControlBackend() string { return t.reg.DisplayControlBackend() }

// SetDisplayControlBackend overrides the display control backend.
func (t *Temporary) SetDisplayControlBackend(v string) error {
	return t.Set(SettingDisplayControlBackend, v)
}

// FindBackend returns the name of the computer vision backend.
func (t *Temporary) FindBackend() string { return t.reg.FindBackend() }

// SetFindBackend overrides the name of the computer vision backend.
func (t *Temporary) SetFindBackend(v string) error { return t.Set(SettingFindBackend, v) }

// ContourThresholdBackend returns the name of the contour threshold backend.
func (t *Temporary) ContourThresholdBackend() string { return t.reg.ContourThresholdBackend() }

// SetContourThresholdBackend overrides the name of the contour threshold backend.
func (t *Temporary) SetContourThresholdBackend(v string) error {
	return t.Set(SettingContourThresholdBackend, v)
}

// TemplateMatchBackend returns the name of the template matching backend.
func (t *Temporary) TemplateMatchBackend() string { return t.reg.TemplateMatchBackend() }

// SetTemplateMatchBackend overrides the name of the template matching backend.
func (t *Temporary) SetTemplateMatchBackend(v string) error {
	return t.Set(SettingTemplateMatchBackend, v)
}

// FeatureDetectBackend returns the name of the feature detection backend.
func (t *Temporary) FeatureDetectBackend() string { return t.reg.FeatureDetectBackend() }

// SetFeatureDetectBackend overrides the name of the feature detection backend.
func (t *Temporary) SetFeatureDetectBackend(v string) error {
	return t.Set(SettingFeatureDetectBackend, v)
}

// FeatureExtractBackend returns the name of the feature extraction backend.
func (t *Temporary) FeatureExtractBackend() string { return t.reg.FeatureExtractBackend() }

// SetFeatureExtractBackend overrides the name of the feature extraction backend.
func (t *Temporary) SetFeatureExtractBackend(v string) error {
	return t.Set(SettingFeatureExtractBackend, v)
}

// FeatureMatchBackend returns the name of the feature matching backend.
func (t *Temporary) FeatureMatchBackend() string { return t.reg.FeatureMatchBackend() }

// SetFeatureMatchBackend overrides the name of the feature matching backend.
func (t *Temporary) SetFeatureMatchBackend(v string) error {
	return t.Set(SettingFeatureMatchBackend, v)
}

// TextDetectBackend returns the name of the text detection backend.
func (t *Temporary) TextDetectBackend() string { return t.reg.TextDetectBackend() }

// SetTextDetectBackend overrides the name of the text detection backend.
func (t *Temporary) SetTextDetectBackend(v string) error { return t.Set(SettingTextDetectBackend, v) }

// TextOCRBackend returns the name of the optical character recognition backend.
func (t *Temporary) TextOCRBackend() string { return t.reg.TextOCRBackend() }

// SetTextOCRBackend overrides the name of the optical character recognition backend.
func (t *Temporary) SetTextOCRBackend(v string) error { return t.Set(SettingTextOCRBackend, v) }

// DeepLearnBackend returns the name of the deep learning backend.
func (t *Temporary) DeepLearnBackend() string { return t.reg.DeepLearnBackend() }

// SetDeepLearnBackend overrides the name of the deep learning backend.
func (t *Temporary) SetDeepLearnBackend(v string) error { return t.Set(SettingDeepLearnBackend, v) }

// HybridMatchBackend returns the name of the hybrid matching backend.
func (t *Temporary) HybridMatchBackend() string { return t.reg.HybridMatchBackend() }

// SetHybridMatchBackend overrides the name of the hybrid matching backend.
func (t *Temporary) SetHybridMatchBackend(v string) error {
	return t.Set(SettingHybridMatchBackend, v)
}
