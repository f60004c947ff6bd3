package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "starterkit", CLIName())
	assert.Equal(t, ".starterkit", HomeDir())
	assert.Equal(t, "STARTERKIT", EnvPrefix())
	assert.NotEmpty(t, TelemetryURL())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "STARTERKIT_SKIP_INSTALL", EnvVar("skip_install"))
	assert.Equal(t, "STARTERKIT_VERBOSE", EnvVar("Verbose"))
}
