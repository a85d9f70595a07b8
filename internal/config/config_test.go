package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validEnvironment() map[string]string {
	return map[string]string{
		"SECRET":     "pepper",
		"AWS_REGION": "eu-central-1",
	}
}

func TestDefaults(t *testing.T) {
	config, err := LoadFrom(validEnvironment())

	require.Nil(t, err)
	require.Equal(t, "development", config.Environment)
	require.Equal(t, 4000, config.Port)
	require.False(t, config.IsTestMode)
	require.Equal(t, 10, config.BcryptHasherCost)
	require.Equal(t, StorageSQLite, config.Storage)
	require.Equal(t, "db/users.sqlite", config.SqlitePath)
	require.Equal(t, MailerSES, config.Mailer)
	require.Equal(t, 465, config.SMTPPort)
	require.Equal(t, 5*time.Second, config.OperationTimeout)
	require.Equal(t, []string{"*"}, config.AllowedOrigins)
	require.Nil(t, config.SentryDsn)
	require.Equal(t, "http://localhost:3000", config.ResetLinkBaseURL())
}

func TestProductionFrontend(t *testing.T) {
	environment := validEnvironment()
	environment["ENVIRONMENT"] = "production"
	environment["FRONTEND_URL"] = "http://ignored.test"

	config, err := LoadFrom(environment)

	require.Nil(t, err)
	require.True(t, config.IsProduction())
	require.Equal(t, "https://passwordresetfloww.netlify.app", config.ResetLinkBaseURL())
}

func TestParsedValues(t *testing.T) {
	environment := validEnvironment()
	environment["TEST_MODE"] = "true"
	environment["OPERATION_TIMEOUT"] = "250ms"
	environment["ALLOWED_ORIGINS"] = "http://a.test,http://b.test"
	environment["SENTRY_DSN"] = "https://key@sentry.test/1"
	environment["MAILER"] = "smtp"
	environment["SMTP_HOST"] = "smtp.test"

	config, err := LoadFrom(environment)

	require.Nil(t, err)
	require.True(t, config.IsTestMode)
	require.Equal(t, 250*time.Millisecond, config.OperationTimeout)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, config.AllowedOrigins)
	require.Equal(t, "sentry.test", config.SentryDsn.Host)
	require.Equal(t, MailerSMTP, config.Mailer)
}

func TestInvalidConfig(t *testing.T) {
	cases := []struct {
		id       string
		override map[string]string
	}{
		{id: "low bcrypt cost", override: map[string]string{"BCRYPT_HASHER_COST": "9"}},
		{id: "zero bcrypt cost", override: map[string]string{"BCRYPT_HASHER_COST": "0"}},
		{id: "unknown storage", override: map[string]string{"STORAGE": "json"}},
		{id: "postgres without url", override: map[string]string{"STORAGE": "postgres"}},
		{id: "unknown mailer", override: map[string]string{"MAILER": "resend"}},
		{id: "ses without region", override: map[string]string{"AWS_REGION": ""}},
		{id: "smtp without host", override: map[string]string{"MAILER": "smtp"}},
		{id: "bad port", override: map[string]string{"PORT": "70000"}},
		{id: "not a number", override: map[string]string{"PORT": "http"}},
		{id: "bad timeout", override: map[string]string{"OPERATION_TIMEOUT": "soon"}},
		{id: "seed email only", override: map[string]string{"SEED_USER_EMAIL": "a@x.com"}},
		{
			id:       "log mailer in production",
			override: map[string]string{"ENVIRONMENT": "production", "MAILER": "log"},
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			environment := validEnvironment()
			for k, v := range testcase.override {
				environment[k] = v
			}

			_, err := LoadFrom(environment)

			require.NotNil(t, err)
		})
	}
}

func TestLogMailerOutsideProduction(t *testing.T) {
	environment := validEnvironment()
	environment["MAILER"] = "log"

	config, err := LoadFrom(environment)

	require.Nil(t, err)
	require.Equal(t, MailerLog, config.Mailer)
}

func TestLoadHasher(t *testing.T) {
	config, err := LoadHasherFrom(map[string]string{})
	require.Nil(t, err)
	require.Equal(t, "", config.Secret)
	require.Equal(t, 10, config.BcryptHasherCost)

	config, err = LoadHasherFrom(map[string]string{"SECRET": "pepper", "BCRYPT_HASHER_COST": "12"})
	require.Nil(t, err)
	require.Equal(t, "pepper", config.Secret)
	require.Equal(t, 12, config.BcryptHasherCost)

	_, err = LoadHasherFrom(map[string]string{"BCRYPT_HASHER_COST": "9"})
	require.NotNil(t, err)
}
