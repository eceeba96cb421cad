package models

import "time"

// MailSummary is a lightweight view of one mailbox message, enough for the
// assistant to surface it without pulling the full body.
type MailSummary struct {
	UID     uint32    `json:"uid"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Date    time.Time `json:"date"`
	Seen    bool      `json:"seen"`
	Snippet string    `json:"snippet,omitempty"`
}
