package scheduling

import (
	"fmt"

	"twinmind/models"
)

// ConfigError marks a structurally invalid scheduling configuration. Only
// these propagate as errors; failing to place a task is an expected
// outcome, not an error condition.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scheduling config invalid: %s", e.Reason)
}

// ValidateWorkingHours rejects windows that could never hold a slot.
func ValidateWorkingHours(hours models.WorkingHours) error {
	if hours.StartHour < 0 || hours.StartHour > 23 {
		return &ConfigError{Reason: fmt.Sprintf("start hour %d out of range 0-23", hours.StartHour)}
	}
	if hours.EndHour < 0 || hours.EndHour > 23 {
		return &ConfigError{Reason: fmt.Sprintf("end hour %d out of range 0-23", hours.EndHour)}
	}
	if hours.StartHour >= hours.EndHour {
		return &ConfigError{Reason: fmt.Sprintf("start hour %d must be before end hour %d", hours.StartHour, hours.EndHour)}
	}
	if len(hours.WorkDays) == 0 {
		return &ConfigError{Reason: "no work days configured"}
	}
	any := false
	for _, enabled := range hours.WorkDays {
		if enabled {
			any = true
			break
		}
	}
	if !any {
		return &ConfigError{Reason: "no work days configured"}
	}
	return nil
}
