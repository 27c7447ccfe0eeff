package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsIdempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()
}

func TestWriteMetrics(t *testing.T) {
	reg := NewRegistry(nil)

	writes := testutil.ToFloat64(settingWrites.WithLabelValues(SettingImageQuality))
	failures := testutil.ToFloat64(settingWriteFailures.WithLabelValues(SettingImageQuality, failureInvalidValue))

	require.NoError(t, reg.SetImageQuality(5))
	require.Error(t, reg.Set(SettingImageQuality, "bad"))

	assert.Equal(t, writes+1, testutil.ToFloat64(settingWrites.WithLabelValues(SettingImageQuality)))
	assert.Equal(t, failures+1, testutil.ToFloat64(settingWriteFailures.WithLabelValues(SettingImageQuality, failureInvalidValue)))
}

func TestScopeRestoreMetric(t *testing.T) {
	reg := NewRegistry(nil)
	restores := testutil.ToFloat64(scopeRestores)

	require.NoError(t, reg.Scoped(func(tmp *Temporary) error {
		return tmp.SetImageQuality(2)
	}))

	assert.Equal(t, restores+1, testutil.ToFloat64(scopeRestores))
}

func TestBackendConfigureMetric(t *testing.T) {
	before := testutil.ToFloat64(backendConfigures.WithLabelValues(CategoryType, "dc"))

	l := NewUnconfiguredLocalConfig()
	require.NoError(t, l.ConfigureBackend("dc", CategoryType, false))

	assert.Equal(t, before+1, testutil.ToFloat64(backendConfigures.WithLabelValues(CategoryType, "dc")))
}
