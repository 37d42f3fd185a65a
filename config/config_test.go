package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFunc(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

func TestReadConfigDefaults(t *testing.T) {
	conf, err := ReadConfig(envFunc(map[string]string{
		"HEPVIS_DATA_DIR": t.TempDir(),
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(5000), conf.BackendPort)
	assert.Equal(t, "localhost:5000", conf.BackendPublicURL)
	assert.Equal(t, "info", conf.LoggingLevel)
	assert.False(t, conf.UseDB())
	assert.True(t, PRODEnv)
}

func TestReadConfigFromEnv(t *testing.T) {
	conf, err := ReadConfig(envFunc(map[string]string{
		"HEPVIS_ENV":                "DEV",
		"HEPVIS_BACKEND_PORT":       "15003",
		"HEPVIS_BACKEND_PUBLIC_URL": "example.org:80",
		"HEPVIS_DB_URL":             "mongodb://localhost:27017/ppeDatabase",
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(15003), conf.BackendPort)
	assert.Equal(t, "example.org:80", conf.BackendPublicURL)
	assert.Equal(t, "debug", conf.LoggingLevel)
	assert.True(t, conf.UseDB())
	assert.True(t, DEVEnv)
	require.NoError(t, SetLoggingLevel("info"))
}

func TestReadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"HEPVIS_BACKEND_PORT": "80", "HEPVIS_DATA_DIR": t.TempDir()}},
		{"missing data dir", map[string]string{"HEPVIS_DATA_DIR": "/nonexistent/hepvis"}},
		{"bad log level", map[string]string{"HEPVIS_LOG_LEVEL": "loud", "HEPVIS_DATA_DIR": t.TempDir()}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadConfig(envFunc(tc.env))
			assert.Error(t, err)
		})
	}
}

func TestReadViewerConfigString(t *testing.T) {
	vc, err := ReadViewerConfigString(`
[display]
scale = 2.5

[trajectory]
steps = 32
fieldY = 0
fieldZ = 4
`)
	require.NoError(t, err)
	assert.Equal(t, 2.5, vc.Display.Scale)
	assert.Equal(t, 30, vc.Display.FrameRate)
	assert.Equal(t, 32, vc.Trajectory.Steps)
	assert.Equal(t, 100, vc.Trajectory.Samples)
	assert.Equal(t, 0.0, vc.Trajectory.FieldY)
	assert.Equal(t, 4.0, vc.Trajectory.FieldZ)
	assert.Equal(t, 45.0, vc.Camera.Fov)
}

func TestReadViewerConfigInvalid(t *testing.T) {
	_, err := ReadViewerConfigString("[trajectory]\nsteps = 0\n")
	assert.Error(t, err)

	_, err = ReadViewerConfigString("[unknown]\nkey = 1\n")
	assert.Error(t, err)
}

func TestReadViewerConfigEmptyName(t *testing.T) {
	vc, err := ReadViewerConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultViewerConfig(), vc)
}

func TestParseLoggingLevel(t *testing.T) {
	level, err := ParseLoggingLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, "warn", level)
}
