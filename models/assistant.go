package models

// AssistRequest is one user turn sent to the assistant.
type AssistRequest struct {
	OwnerID string `json:"ownerId"`
	Text    string `json:"text" binding:"required"`
}

// AssistResponse is the assistant's reply, optionally carrying a schedule
// produced by a plan-day turn.
type AssistResponse struct {
	Intent       string          `json:"intent"`
	ResponseText string          `json:"responseText"`
	Provider     string          `json:"provider,omitempty"` // which LLM answered
	Schedule     *ScheduleResult `json:"schedule,omitempty"`
}

// AssistantContext is the per-owner conversation state kept in Redis
// between turns.
type AssistantContext struct {
	PendingTasks []TwinTask `json:"pendingTasks,omitempty"`
	LastIntent   string     `json:"lastIntent,omitempty"`
	TurnCount    int        `json:"turnCount,omitempty"`
}
