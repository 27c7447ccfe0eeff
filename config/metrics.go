package config

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Write failure reasons used as metric labels.
const (
	failureUnknownSetting     = "unknown_setting"
	failureInvalidValue       = "invalid_value"
	failureUnsupportedBackend = "unsupported_backend"
)

var (
	registerMetricsOnce sync.Once

	settingWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelpilot",
			Subsystem: "config",
			Name:      "setting_writes_total",
			Help:      "Successful writes to global configuration settings.",
		},
		[]string{"setting"},
	)
	settingWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelpilot",
			Subsystem: "config",
			Name:      "setting_write_failures_total",
			Help:      "Rejected writes to global configuration settings.",
		},
		[]string{"setting", "reason"},
	)
	scopeRestores = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pixelpilot",
			Subsystem: "config",
			Name:      "scope_restores_total",
			Help:      "Temporary configuration scopes restored.",
		},
	)
	backendConfigures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixelpilot",
			Subsystem: "config",
			Name:      "backend_configures_total",
			Help:      "Backend configurations stored in local containers.",
		},
		[]string{"category", "backend"},
	)
)

// RegisterMetrics registers the configuration metrics with the default
// prometheus registerer. Safe to call more than once; recording works
// whether or not registration ever happens.
func RegisterMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(settingWrites, settingWriteFailures, scopeRestores, backendConfigures)
	})
}

func recordWrite(setting string) {
	settingWrites.WithLabelValues(setting).Inc()
}

func recordWriteFailure(setting, reason string) {
	settingWriteFailures.WithLabelValues(setting, reason).Inc()
}

func recordScopeRestore() {
	scopeRestores.Inc()
}

func recordBackendConfigure(category, backend string) {
	backendConfigures.WithLabelValues(category, backend).Inc()
}

// failureReason maps a rejected write's error to its metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedBackend):
		return failureUnsupportedBackend
	case errors.Is(err, ErrUnknownSetting):
		return failureUnknownSetting
	default:
		return failureInvalidValue
	}
}
