package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"twinmind/models"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// ICSBusySource reads busy intervals from subscribed read-only ICS feeds
// (shared team calendars, holiday feeds and the like).
type ICSBusySource struct {
	urls       []string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewICSBusySource(urls []string, logger *zap.Logger) *ICSBusySource {
	return &ICSBusySource{
		urls:       urls,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// FetchBusy downloads each feed and collects VEVENTs intersecting
// [from, to). A failing feed is logged and skipped so one dead URL does
// not block scheduling.
func (s *ICSBusySource) FetchBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	var busy []models.BusyInterval
	for _, url := range s.urls {
		body, err := s.fetch(ctx, url)
		if err != nil {
			s.logger.Warn("ICS feed fetch failed, skipping", zap.String("url", url), zap.Error(err))
			continue
		}
		intervals, err := ParseICSBusy(body, from, to)
		if err != nil {
			s.logger.Warn("ICS feed parse failed, skipping", zap.String("url", url), zap.Error(err))
			continue
		}
		busy = append(busy, intervals...)
	}
	return busy, nil
}

func (s *ICSBusySource) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ParseICSBusy parses an ICS payload into busy intervals clipped to the
// requested range. Events without usable times are skipped.
func ParseICSBusy(body []byte, from, to time.Time) ([]models.BusyInterval, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var busy []models.BusyInterval
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			continue
		}
		if !start.Before(to) || !end.After(from) {
			continue
		}
		busy = append(busy, models.BusyInterval{Start: start.Local(), End: end.Local()})
	}
	return busy, nil
}
