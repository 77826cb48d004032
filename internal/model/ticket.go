package model

import "time"

// TicketContext is the read-only input to one extraction call. It carries
// everything the upstream ticketing system knows about a case: structured
// fields plus every free-text source that might mention the injury date.
type TicketContext struct {
	ID           int64             `json:"id"`
	Subject      string            `json:"subject,omitempty"`
	Description  string            `json:"description,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	WorkerName   string            `json:"worker_name,omitempty"`
	CompanyName  string            `json:"company_name,omitempty"`

	// Conversation bodies and attachment-extracted texts, in thread order.
	Conversations []string `json:"conversations,omitempty"`
	Attachments   []string `json:"attachments,omitempty"`
}

// CustomField returns the first non-empty value among the given keys.
func (t TicketContext) CustomField(keys ...string) string {
	for _, k := range keys {
		if v, ok := t.CustomFields[k]; ok && v != "" {
			return v
		}
	}
	return ""
}
