package models

import (
	"encoding/json"
	"fmt"
)

// Collection names one of the two persisted record sets.
type Collection string

const (
	CollectionReservations Collection = "reservations"
	CollectionOrders       Collection = "orders"
)

const StatusNew = "new"

var reservationStatuses = []string{"new", "confirmed", "completed", "cancelled"}
var orderStatuses = []string{"new", "accepted", "preparing", "ready", "completed", "cancelled"}

// AllowedStatuses returns the status enum for the collection.
func (c Collection) AllowedStatuses() []string {
	if c == CollectionOrders {
		return orderStatuses
	}
	return reservationStatuses
}

// ValidStatus reports whether s is a member of the collection's status enum.
func (c Collection) ValidStatus(s string) bool {
	for _, allowed := range c.AllowedStatuses() {
		if s == allowed {
			return true
		}
	}
	return false
}

// EmailNotification is the outcome of the most recent delivery attempt
// for a record. A record that has never been attempted carries null.
type EmailNotification struct {
	Sent      bool   `json:"sent"`
	Error     string `json:"error"`
	UpdatedAt string `json:"updated_at"`
}

// Record is a single reservation or order entry. Domain fields (name,
// contact info, free text) live in Fields; id, status, created_at and
// email_notification are lifted out so the store can work with them.
//
// Rows written by older variants of the site sometimes carry a non-numeric
// id. Those rows are kept as-is: rawID preserves the original value and
// ID stays zero, so the store skips them when matching by id.
type Record struct {
	ID        int64
	Status    string
	CreatedAt string
	Email     *EmailNotification
	Fields    map[string]string

	rawID json.RawMessage
}

// HasID reports whether the record carries a usable numeric id.
func (r *Record) HasID() bool {
	return r.ID > 0
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		out[k] = v
	}
	if r.ID > 0 {
		out["id"] = r.ID
	} else if r.rawID != nil {
		out["id"] = r.rawID
	}
	out["status"] = r.Status
	out["created_at"] = r.CreatedAt
	out["email_notification"] = r.Email
	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{Fields: make(map[string]string)}
	for key, val := range raw {
		switch key {
		case "id":
			var id int64
			if err := json.Unmarshal(val, &id); err == nil {
				r.ID = id
			} else {
				r.rawID = val
			}
		case "status":
			_ = json.Unmarshal(val, &r.Status)
		case "created_at":
			_ = json.Unmarshal(val, &r.CreatedAt)
		case "email_notification":
			if string(val) != "null" {
				var n EmailNotification
				if err := json.Unmarshal(val, &n); err == nil {
					r.Email = &n
				}
			}
		default:
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				r.Fields[key] = s
			} else {
				var v any
				_ = json.Unmarshal(val, &v)
				r.Fields[key] = fmt.Sprint(v)
			}
		}
	}
	return nil
}
