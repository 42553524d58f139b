package mailer

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"
)

const sendTimeout = 15 * time.Second

// Notifier sends submission notifications over SMTP. Settings are read from
// the environment on every call, so they can be changed without a restart:
//
//	SMTP_HOST, SMTP_PORT, SMTP_SENDER, SMTP_RECIPIENT  (required)
//	SMTP_USERNAME, SMTP_PASSWORD                       (optional, enables auth)
//	SMTP_MODE                                          (plain|starttls|ssl, default starttls)
//
// Send makes exactly one synchronous delivery attempt with a bounded timeout
// and reports failure through its error return. There is no retry and no
// queue: the durable record of a submission is the store, not the email.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Send attempts a single delivery. A nil return means the message was
// accepted by the SMTP server; any configuration, transport or auth problem
// comes back as an error without reaching further than this call.
func (n *Notifier) Send(subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	sender := os.Getenv("SMTP_SENDER")
	recipient := os.Getenv("SMTP_RECIPIENT")

	var missing []string
	if host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if portStr == "" {
		missing = append(missing, "SMTP_PORT")
	}
	if sender == "" {
		missing = append(missing, "SMTP_SENDER")
	}
	if recipient == "" {
		missing = append(missing, "SMTP_RECIPIENT")
	}
	if len(missing) > 0 {
		return fmt.Errorf("smtp not configured, missing %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("smtp not configured, SMTP_PORT %q is not a number", portStr)
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTimeout(sendTimeout),
	}
	switch strings.ToLower(os.Getenv("SMTP_MODE")) {
	case "ssl":
		opts = append(opts, mail.WithSSL())
	case "plain":
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(sender); err != nil {
		return fmt.Errorf("smtp sender %q: %w", sender, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("smtp recipient %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp delivery: %w", err)
	}
	return nil
}
