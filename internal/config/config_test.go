package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DB_USER", "test")
	t.Setenv("DB_PASSWORD", "test")
	t.Setenv("DB_NAME", "webshop")
}

func TestGet_DefaultAndOverride(t *testing.T) {
	c := &Config{}

	assert.Equal(t, "8080", c.Get("PORT"))

	t.Setenv("PORT", "9090")
	assert.Equal(t, "9090", c.Get("PORT"))
}

func TestGet_ReadsLiveEnvironment(t *testing.T) {
	c := &Config{}

	t.Setenv("BASE_DOMAIN", "first.example")
	require.Equal(t, "first.example", c.BaseDomain())

	// Mutating the environment mid-process must be visible on the next
	// read, without rebuilding the resolver.
	t.Setenv("BASE_DOMAIN", "second.example")
	assert.Equal(t, "second.example", c.BaseDomain())
	assert.Equal(t, "second.example", Get("BASE_DOMAIN"), "package-level access must see the same live value")
}

func TestValidate_MissingRequired(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("DB_USER", "test")
	t.Setenv("DB_PASSWORD", "test")
	t.Setenv("DB_NAME", "webshop")

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestValidate_AllPresent(t *testing.T) {
	setRequired(t)
	assert.NoError(t, Validate())
}

func TestEmailAddresses_DerivedFromBaseDomain(t *testing.T) {
	c := &Config{}

	t.Setenv("BASE_DOMAIN", "shop.example")
	assert.Equal(t, "info@shop.example", c.EmailFrom())
	assert.Equal(t, "info@shop.example", c.EmailTo())

	t.Setenv("EMAIL_FROM", "noreply@shop.example")
	t.Setenv("EMAIL_TO", "owner@shop.example")
	assert.Equal(t, "noreply@shop.example", c.EmailFrom())
	assert.Equal(t, "owner@shop.example", c.EmailTo())
}

func TestDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")

	c := &Config{}
	assert.Equal(t,
		"host=db.internal port=5433 user=test password=test dbname=webshop sslmode=disable",
		c.DSN())
}

func TestCookieSecure(t *testing.T) {
	c := &Config{}

	assert.False(t, c.CookieSecure())

	t.Setenv("SESSION_COOKIE_SECURE", "True")
	assert.True(t, c.CookieSecure())
}
