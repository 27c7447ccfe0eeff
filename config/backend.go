package config

import (
	"fmt"
	"slices"
)

// Backend categories and algorithm types known to the base container.
// More categories are expected over time; derived containers extend the
// maps before configuring.
const (
	// CategoryType is the base configuration axis selecting between the
	// computer vision and display control backend families.
	CategoryType = "type"

	// algorithmTypeBackends is the algorithm-type key the base category
	// maps to.
	algorithmTypeBackends = "backend_types"

	// DefaultBackend is the backend selected when none is named.
	DefaultBackend = "cv"
)

// LocalConfig holds the backend configuration of a single consumer
// instance, such as one matching target or one screen region. It maps
// each category to an algorithm type, each algorithm type to its
// admissible backend names, and each configured category to the selected
// backend with its parameters.
//
// Configuration is a two-phase lifecycle: ConfigureBackend builds the
// parameter dictionary for a category, SynchronizeBackend validates that
// the named backend is one the container is prepared to use. Both may be
// re-invoked to reconfigure.
//
// A LocalConfig is private to its owning consumer and is not safe for
// concurrent use.
type LocalConfig struct {
	categories map[string]string
	algorithms map[string][]string
	params     map[string]map[string]any
}

// NewLocalConfig builds a container with the base category wiring and
// immediately configures and synchronizes it with the default backend.
func NewLocalConfig() (*LocalConfig, error) {
	l := NewUnconfiguredLocalConfig()
	if err := l.ConfigureBackend("", CategoryType, false); err != nil {
		return nil, err
	}
	if err := l.SynchronizeBackend("", CategoryType, false); err != nil {
		return nil, err
	}
	return l, nil
}

// NewUnconfiguredLocalConfig builds a container with the base category
// wiring but no configured parameters. The caller is expected to run
// Configure and Synchronize (or the per-category variants) before
// handing the parameters to a backend.
func NewUnconfiguredLocalConfig() *LocalConfig {
	return &LocalConfig{
		categories: map[string]string{CategoryType: algorithmTypeBackends},
		algorithms: map[string][]string{algorithmTypeBackends: {"cv", "dc"}},
		params:     make(map[string]map[string]any),
	}
}

// ConfigureBackend generates the parameter dictionary for one category,
// discarding any parameters previously configured for it. An empty
// backend selects DefaultBackend. The reset flag requests cascading
// reconfiguration of dependent categories; the base category has none,
// so it is accepted without effect.
func (l *LocalConfig) ConfigureBackend(backend, category string, reset bool) error {
	admissible, err := l.admissible(category)
	if err != nil {
		return err
	}
	if backend == "" {
		backend = DefaultBackend
	}
	if !slices.Contains(admissible, backend) {
		return fmt.Errorf("%w %q: supported ones are %v", ErrUnsupportedBackend, backend, admissible)
	}

	l.params[category] = map[string]any{"backend": backend}
	recordBackendConfigure(category, backend)
	return nil
}

// SynchronizeBackend validates that the named backend is one this
// container can be synchronized with for the category. An empty backend
// selects DefaultBackend. It performs no mutation and is idempotent; the
// reset flag is accepted without effect for the base category.
//
// Note that the check is membership in the admissible set, not that
// ConfigureBackend previously stored the name. A backend can therefore
// synchronize without ever having been configured; see the package tests
// for the pinned behavior.
func (l *LocalConfig) SynchronizeBackend(backend, category string, reset bool) error {
	admissible, err := l.admissible(category)
	if err != nil {
		return err
	}
	if backend == "" {
		backend = DefaultBackend
	}
	if !slices.Contains(admissible, backend) {
		return fmt.Errorf("%w: %q", ErrUninitializedBackend, backend)
	}
	return nil
}

// Configure generates the configuration for all categories with their
// default backends. With reset, categories left unnamed are reset to
// defaults as well; the base container has a single category, so the two
// behave identically.
func (l *LocalConfig) Configure(reset bool) error {
	return l.ConfigureBackend("", CategoryType, reset)
}

// Synchronize validates all categories against their current
// configuration.
func (l *LocalConfig) Synchronize(reset bool) error {
	return l.SynchronizeBackend("", CategoryType, reset)
}

// Backend returns the backend currently selected for the category, if
// the category has been configured.
func (l *LocalConfig) Backend(category string) (string, bool) {
	params, ok := l.params[category]
	if !ok {
		return "", false
	}
	backend, ok := params["backend"].(string)
	return backend, ok
}

// Params returns a copy of the parameter dictionary configured for the
// category. The dictionary is the contract handed to the backend
// instantiation step.
func (l *LocalConfig) Params(category string) (map[string]any, bool) {
	params, ok := l.params[category]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out, true
}

// SetParam stores a backend-specific parameter for a configured
// category. The "backend" key is reserved for the selected backend name.
func (l *LocalConfig) SetParam(category, key string, value any) error {
	if _, err := l.admissible(category); err != nil {
		return err
	}
	params, ok := l.params[category]
	if !ok {
		return fmt.Errorf("category %q has not been configured", category)
	}
	params[key] = value
	return nil
}

// Categories returns the configuration axes the container knows about.
func (l *LocalConfig) Categories() []string {
	out := make([]string, 0, len(l.categories))
	for c := range l.categories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Algorithms returns the admissible backend names for the category.
func (l *LocalConfig) Algorithms(category string) ([]string, error) {
	return l.admissible(category)
}

// admissible resolves a category to its admissible backend names.
func (l *LocalConfig) admissible(category string) ([]string, error) {
	if category != CategoryType {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCategory, category)
	}
	return slices.Clone(l.algorithms[l.categories[category]]), nil
}
