package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalConfigIsReady(t *testing.T) {
	l, err := NewLocalConfig()
	require.NoError(t, err)

	backend, ok := l.Backend(CategoryType)
	require.True(t, ok)
	assert.Equal(t, "cv", backend)

	params, ok := l.Params(CategoryType)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"backend": "cv"}, params)
}

func TestConfigureBackend(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		category string
		wantErr  error
		want     string
	}{
		{"default backend", "", CategoryType, nil, "cv"},
		{"cv backend", "cv", CategoryType, nil, "cv"},
		{"dc backend", "dc", CategoryType, nil, "dc"},
		{"inadmissible backend", "text", CategoryType, ErrUnsupportedBackend, ""},
		// "dc" names a valid backend, but it is not a category.
		{"backend name as category", "cv", "dc", ErrUnsupportedCategory, ""},
		{"unknown category", "cv", "control", ErrUnsupportedCategory, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewUnconfiguredLocalConfig()
			err := l.ConfigureBackend(tt.backend, tt.category, false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, ok := l.Backend(tt.category)
				assert.False(t, ok, "failed configure must not store params")
				return
			}
			require.NoError(t, err)
			backend, ok := l.Backend(tt.category)
			require.True(t, ok)
			assert.Equal(t, tt.want, backend)
		})
	}
}

func TestConfigureBackendIsDestructive(t *testing.T) {
	l := NewUnconfiguredLocalConfig()
	require.NoError(t, l.ConfigureBackend("cv", CategoryType, false))
	require.NoError(t, l.SetParam(CategoryType, "vnc_hostname", "localhost"))

	// Reconfiguring rebuilds the parameter dictionary from scratch.
	require.NoError(t, l.ConfigureBackend("dc", CategoryType, false))
	params, ok := l.Params(CategoryType)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"backend": "dc"}, params)
}

func TestSynchronizeBackendIdempotent(t *testing.T) {
	l, err := NewLocalConfig()
	require.NoError(t, err)

	before, ok := l.Params(CategoryType)
	require.True(t, ok)

	require.NoError(t, l.SynchronizeBackend("cv", CategoryType, false))
	require.NoError(t, l.SynchronizeBackend("cv", CategoryType, false))

	after, ok := l.Params(CategoryType)
	require.True(t, ok)
	assert.Equal(t, before, after, "synchronize must not mutate state")
}

func TestSynchronizeBackendWithoutConfigure(t *testing.T) {
	// Synchronize checks membership in the admissible set, not that
	// configure ran first. This pins the container's actual contract.
	l := NewUnconfiguredLocalConfig()
	assert.NoError(t, l.SynchronizeBackend("cv", CategoryType, false))

	_, ok := l.Params(CategoryType)
	assert.False(t, ok, "synchronize must not create params")
}

func TestSynchronizeBackendErrors(t *testing.T) {
	l := NewUnconfiguredLocalConfig()

	err := l.SynchronizeBackend("text", CategoryType, false)
	assert.ErrorIs(t, err, ErrUninitializedBackend)

	err = l.SynchronizeBackend("cv", "control", false)
	assert.ErrorIs(t, err, ErrUnsupportedCategory)
}

func TestConfigureSynchronizeWholeContainer(t *testing.T) {
	l := NewUnconfiguredLocalConfig()
	require.NoError(t, l.Configure(true))

	backend, ok := l.Backend(CategoryType)
	require.True(t, ok)
	assert.Equal(t, DefaultBackend, backend)

	assert.NoError(t, l.Synchronize(true))
}

func TestLocalConfigIntrospection(t *testing.T) {
	l := NewUnconfiguredLocalConfig()

	assert.Equal(t, []string{CategoryType}, l.Categories())

	algorithms, err := l.Algorithms(CategoryType)
	require.NoError(t, err)
	assert.Equal(t, []string{"cv", "dc"}, algorithms)

	_, err = l.Algorithms("control")
	assert.ErrorIs(t, err, ErrUnsupportedCategory)
}

func TestParamsReturnsCopy(t *testing.T) {
	l, err := NewLocalConfig()
	require.NoError(t, err)

	params, ok := l.Params(CategoryType)
	require.True(t, ok)
	params["backend"] = "dc"

	backend, ok := l.Backend(CategoryType)
	require.True(t, ok)
	assert.Equal(t, "cv", backend, "mutating the returned copy must not affect the container")
}

func TestSetParam(t *testing.T) {
	l := NewUnconfiguredLocalConfig()

	err := l.SetParam(CategoryType, "vnc_hostname", "localhost")
	assert.Error(t, err, "parameters require a configured category")

	require.NoError(t, l.ConfigureBackend("dc", CategoryType, false))
	require.NoError(t, l.SetParam(CategoryType, "vnc_hostname", "localhost"))

	params, ok := l.Params(CategoryType)
	require.True(t, ok)
	assert.Equal(t, "localhost", params["vnc_hostname"])
	assert.Equal(t, "dc", params["backend"])

	err = l.SetParam("control", "vnc_hostname", "localhost")
	assert.ErrorIs(t, err, ErrUnsupportedCategory)
}
