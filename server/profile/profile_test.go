package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *Profile {
	return &Profile{
		Mode:         "prod",
		Port:         8005,
		Driver:       "sqlite",
		DSN:          "mentio.db",
		JWTSecret:    "secret",
		MessageLimit: 5,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	p := validProfile()
	p.Driver = "oracle"
	assert.Error(t, p.Validate())

	p = validProfile()
	p.DSN = ""
	assert.Error(t, p.Validate())

	p = validProfile()
	p.JWTSecret = ""
	assert.Error(t, p.Validate())

	p = validProfile()
	p.MessageLimit = 0
	assert.Error(t, p.Validate())
}

func TestValidateNormalizesMode(t *testing.T) {
	p := validProfile()
	p.Mode = "staging"
	require.NoError(t, p.Validate())
	assert.Equal(t, "dev", p.Mode)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MENTIO_JWT_SECRET", "secret")
	p, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8005, p.Port)
	assert.Equal(t, "sqlite", p.Driver)
	assert.Equal(t, "gpt-4o", p.AIModel)
	assert.Equal(t, 5, p.MessageLimit)
	assert.Equal(t, ":8005", p.ListenAddr())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MENTIO_JWT_SECRET", "secret")
	t.Setenv("MENTIO_DRIVER", "postgres")
	t.Setenv("MENTIO_DSN", "postgres://localhost/mentio")
	t.Setenv("MENTIO_MESSAGE_LIMIT", "9")
	p, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres", p.Driver)
	assert.Equal(t, 9, p.MessageLimit)
}
