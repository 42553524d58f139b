package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maisonember/restaurant-site/mailer"
)

func clearSMTPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_SENDER", "SMTP_RECIPIENT", "SMTP_MODE"} {
		t.Setenv(key, "")
	}
}

func TestSendWithoutConfiguration(t *testing.T) {
	clearSMTPEnv(t)

	err := mailer.NewNotifier().Send("subject", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "SMTP_PORT")
	assert.Contains(t, err.Error(), "SMTP_SENDER")
	assert.Contains(t, err.Error(), "SMTP_RECIPIENT")
}

func TestSendNamesOnlyTheMissingSettings(t *testing.T) {
	clearSMTPEnv(t)
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_SENDER", "site@example.com")

	err := mailer.NewNotifier().Send("subject", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_RECIPIENT")
	assert.NotContains(t, err.Error(), "SMTP_HOST")
	assert.NotContains(t, err.Error(), "SMTP_PORT")
}

func TestSendRejectsNonNumericPort(t *testing.T) {
	clearSMTPEnv(t)
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "five-eight-seven")
	t.Setenv("SMTP_SENDER", "site@example.com")
	t.Setenv("SMTP_RECIPIENT", "front-desk@example.com")

	err := mailer.NewNotifier().Send("subject", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PORT")
}

func TestSendRejectsBadSenderAddress(t *testing.T) {
	clearSMTPEnv(t)
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_SENDER", "not an address")
	t.Setenv("SMTP_RECIPIENT", "front-desk@example.com")

	err := mailer.NewNotifier().Send("subject", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sender")
}
