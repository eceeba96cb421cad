package calendar

import (
	"context"
	"fmt"
	"time"

	"twinmind/models"
)

// MergedBusySource concatenates several busy sources into one. Any source
// failing makes the whole fetch fail: scheduling against a partial busy
// picture would silently double-book the owner.
type MergedBusySource struct {
	sources []BusySource
}

func NewMergedBusySource(sources ...BusySource) *MergedBusySource {
	return &MergedBusySource{sources: sources}
}

func (m *MergedBusySource) FetchBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	var busy []models.BusyInterval
	for _, src := range m.sources {
		intervals, err := src.FetchBusy(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("busy source failed: %w", err)
		}
		busy = append(busy, intervals...)
	}
	return busy, nil
}
