package ai

import (
	"testing"

	"twinmind/models"
)

func TestParseExtractedTasks(t *testing.T) {
	raw := `Here are the tasks I found:
[
  {"description": "write report", "priority": "high", "deadline": "2026-09-15T17:00:00Z", "durationMinutes": 90},
  {"description": "buy groceries", "priority": "low", "deadline": "", "durationMinutes": 0},
  {"description": "  ", "priority": "medium", "deadline": "", "durationMinutes": 0}
]
Let me know if you need anything else.`

	taskList, err := ParseExtractedTasks(raw)
	if err != nil {
		t.Fatalf("ParseExtractedTasks: %v", err)
	}
	if len(taskList) != 2 {
		t.Fatalf("got %d tasks, want 2 (blank description dropped)", len(taskList))
	}
	if taskList[0].Description != "write report" || taskList[0].Priority != models.PriorityHigh {
		t.Errorf("first task = %+v", taskList[0])
	}
	if taskList[0].Deadline == nil {
		t.Error("first task lost its deadline")
	}
	if taskList[0].DurationMinutes != 90 {
		t.Errorf("durationMinutes = %d, want 90", taskList[0].DurationMinutes)
	}
	if taskList[1].Deadline != nil {
		t.Error("empty deadline should stay nil")
	}
}

func TestParseExtractedTasks_NoArray(t *testing.T) {
	if _, err := ParseExtractedTasks("I could not find any tasks."); err == nil {
		t.Error("expected error for output without a JSON array")
	}
}

func TestDetectIntent(t *testing.T) {
	cases := map[string]string{
		"please schedule my tasks for today": "plan",
		"plan my week":                       "plan",
		"how are you?":                       "chat",
	}
	for text, want := range cases {
		if got := detectIntent(text); got != want {
			t.Errorf("detectIntent(%q) = %q, want %q", text, got, want)
		}
	}
}
