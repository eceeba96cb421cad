package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"twinmind/models"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	gomessage "github.com/emersion/go-message"
	gomail "github.com/emersion/go-message/mail"
	"go.uber.org/zap"
)

// snippetLimit caps how much body text a summary carries.
const snippetLimit = 280

// FetchUnread returns summaries of unseen messages in the configured
// mailbox, newest first.
func (c *Client) FetchUnread(ctx context.Context, limit int) ([]models.MailSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	mailbox := c.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := c.client.Select(mailbox, nil).Wait(); err != nil {
		return nil, fmt.Errorf("select %s: %w", mailbox, err)
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}
	searchData, err := c.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", mailbox, err)
	}

	allUIDs := searchData.AllUIDs()
	if len(allUIDs) == 0 {
		return nil, nil
	}
	// Highest UIDs are newest; keep the most recent ones.
	if len(allUIDs) > limit {
		allUIDs = allUIDs[len(allUIDs)-limit:]
	}

	uidSet := imap.UIDSet{}
	for _, uid := range allUIDs {
		uidSet.AddNum(uid)
	}

	fetchOpts := &imap.FetchOptions{
		UID:      true,
		Envelope: true,
		Flags:    true,
		BodySection: []*imap.FetchItemBodySection{
			{Peek: true}, // summarizing must not mark messages read
		},
	}
	fetchCmd := c.client.Fetch(uidSet, fetchOpts)

	var summaries []models.MailSummary
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		summary, err := c.parseSummary(msg)
		if err != nil {
			c.logger.Debug("skipping message", zap.Error(err))
			continue
		}
		summaries = append(summaries, summary)
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch summaries: %w", err)
	}

	// Newest first.
	for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	}
	return summaries, nil
}

func (c *Client) parseSummary(msg *imapclient.FetchMessageData) (models.MailSummary, error) {
	var summary models.MailSummary

	for {
		item := msg.Next()
		if item == nil {
			break
		}
		switch data := item.(type) {
		case imapclient.FetchItemDataUID:
			summary.UID = uint32(data.UID)
		case imapclient.FetchItemDataFlags:
			for _, f := range data.Flags {
				if f == imap.FlagSeen {
					summary.Seen = true
				}
			}
		case imapclient.FetchItemDataEnvelope:
			if data.Envelope != nil {
				summary.Date = data.Envelope.Date
				summary.Subject = data.Envelope.Subject
				if len(data.Envelope.From) > 0 {
					summary.From = formatAddress(data.Envelope.From[0])
				}
			}
		case imapclient.FetchItemDataBodySection:
			// The literal streams from the connection; it must be consumed
			// here or the stream desyncs.
			if data.Literal == nil {
				continue
			}
			summary.Snippet = extractSnippet(data.Literal)
			_, _ = io.Copy(io.Discard, data.Literal)
		}
	}

	if summary.UID == 0 {
		return summary, fmt.Errorf("message missing UID")
	}
	return summary, nil
}

// extractSnippet pulls the first text/plain part out of a raw message and
// trims it to snippetLimit runes. Unknown charsets are tolerated; a
// garbled snippet still beats none for triage.
func extractSnippet(r io.Reader) string {
	mr, err := gomail.CreateReader(r)
	if err != nil && !gomessage.IsUnknownCharset(err) {
		return ""
	}
	if mr == nil {
		return ""
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			return ""
		}
		header, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}
		ct, _, _ := header.ContentType()
		if ct != "text/plain" {
			continue
		}
		body, err := io.ReadAll(io.LimitReader(part.Body, 4*snippetLimit))
		if err != nil {
			return ""
		}
		text := strings.TrimSpace(string(body))
		runes := []rune(text)
		if len(runes) > snippetLimit {
			return string(runes[:snippetLimit]) + "…"
		}
		return text
	}
}

// formatAddress renders an IMAP address as "Name <user@host>" or just the
// bare address.
func formatAddress(addr imap.Address) string {
	email := addr.Addr()
	if addr.Name != "" {
		return fmt.Sprintf("%s <%s>", addr.Name, email)
	}
	return email
}
