package services

import (
	"fmt"
	"strings"

	"github.com/maisonember/restaurant-site/mailer"
	"github.com/maisonember/restaurant-site/models"
	"github.com/maisonember/restaurant-site/store"
	"github.com/maisonember/restaurant-site/utils"
)

// ValidationError names the first required field found missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Required and optional fields per collection, in the order they appear in
// the notification email.
var (
	reservationRequired = []string{"full_name", "email", "phone", "reservation_date", "reservation_time", "guests"}
	reservationOptional = []string{"occasion", "notes"}
	orderRequired       = []string{"full_name", "phone", "pickup_time", "order_details"}
	orderOptional       = []string{"email", "notes"}
)

// Submission is the outcome of a successful submit: the stored record plus
// the notification result. EmailSent is informational only; the record was
// durably written either way.
type Submission struct {
	Record     models.Record
	EmailSent  bool
	EmailError string
}

// SubmissionService turns validated form payloads into stored records and
// fires the best-effort notification email. The ordering is fixed: the
// record is written first, the email is attempted second, and its outcome
// is patched back onto the record. A notification failure never unwinds or
// fails the write.
type SubmissionService struct {
	records  *store.RecordStore
	notifier *mailer.Notifier
}

func NewSubmissionService(records *store.RecordStore, notifier *mailer.Notifier) *SubmissionService {
	return &SubmissionService{records: records, notifier: notifier}
}

// Submit validates payload for the collection, appends the record, then
// attempts the notification. Validation and storage failures abort before
// any side effect; notification failures are recorded on the row and
// reported through Submission, never as an error.
func (s *SubmissionService) Submit(col models.Collection, payload map[string]string) (Submission, error) {
	required, optional := fieldsFor(col)

	fields := make(map[string]string, len(required)+len(optional))
	for _, name := range required {
		value := strings.TrimSpace(payload[name])
		if value == "" {
			return Submission{}, &ValidationError{Field: name}
		}
		fields[name] = value
	}
	for _, name := range optional {
		if value := strings.TrimSpace(payload[name]); value != "" {
			fields[name] = value
		}
	}

	rec, err := s.records.Append(col, models.Record{Fields: fields})
	if err != nil {
		return Submission{}, err
	}
	utils.InfoLogger.Printf("Stored %s #%d from %s", col, rec.ID, rec.Fields["full_name"])

	sub := Submission{Record: rec, EmailSent: true}
	if err := s.notifier.Send(subjectFor(col, rec), bodyFor(col, rec)); err != nil {
		sub.EmailSent = false
		sub.EmailError = err.Error()
		utils.ErrorLogger.Printf("Notification for %s #%d failed: %v", col, rec.ID, err)
	}

	if err := s.records.PatchNotification(col, rec.ID, sub.EmailSent, sub.EmailError); err != nil {
		// Best effort: the submission already succeeded.
		utils.ErrorLogger.Printf("Could not record notification outcome for %s #%d: %v", col, rec.ID, err)
	}
	return sub, nil
}

func fieldsFor(col models.Collection) (required, optional []string) {
	if col == models.CollectionOrders {
		return orderRequired, orderOptional
	}
	return reservationRequired, reservationOptional
}

func subjectFor(col models.Collection, rec models.Record) string {
	if col == models.CollectionOrders {
		return fmt.Sprintf("New pickup order #%d - Maison Ember", rec.ID)
	}
	return fmt.Sprintf("New reservation #%d - Maison Ember", rec.ID)
}

func bodyFor(col models.Collection, rec models.Record) string {
	required, optional := fieldsFor(col)

	var b strings.Builder
	if col == models.CollectionOrders {
		b.WriteString("A new pickup order came in through the website.\n\n")
	} else {
		b.WriteString("A new reservation came in through the website.\n\n")
	}
	fmt.Fprintf(&b, "Reference: #%d\nReceived: %s\n", rec.ID, rec.CreatedAt)
	for _, name := range required {
		fmt.Fprintf(&b, "%s: %s\n", labelFor(name), rec.Fields[name])
	}
	for _, name := range optional {
		if value, ok := rec.Fields[name]; ok {
			fmt.Fprintf(&b, "%s: %s\n", labelFor(name), value)
		}
	}
	return b.String()
}

func labelFor(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
