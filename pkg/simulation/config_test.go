package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_ShippedDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "default.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{"population": 50, "damping": 0.999, "showConnections": false}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Population = 50
	want.Damping = 0.999
	want.ShowConnections = false
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool // wraps ErrInvalidConfig
	}{
		{"not json", `{"population": `, false},
		{"damping above one", `{"damping": 1.5}`, true},
		{"fractional population", `{"population": 10.5}`, true},
		{"negative repulsion", `{"repulsionFactor": -1}`, true},
		{"zero sub-steps", `{"subSteps": 0}`, true},
		{"unknown field", `{"gravity": 9.81}`, true},
		{"wrong type", `{"showConnections": "yes"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NotErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_MergeDoesNotMutate(t *testing.T) {
	base := DefaultConfig()
	merged, err := base.Merge([]byte(`{"centeringFactor": 0.001, "subSteps": 3}`))
	require.NoError(t, err)

	assert.Equal(t, 0.001, merged.CenteringFactor)
	assert.Equal(t, 3, merged.SubSteps)
	assert.Equal(t, DefaultConfig(), base)

	_, err = base.Merge([]byte(`{"subSteps": -1}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, DefaultConfig(), base)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CanvasSize = 10
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "/canvasSize")
}
