package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"twinmind/models"
	"twinmind/services/planner"
	"twinmind/utils"

	"go.uber.org/zap"
)

const taskExtractionPrompt = `Extract the tasks from the message below as a JSON array.
Each element: {"description": string, "priority": "high"|"medium"|"low", "deadline": string or "", "durationMinutes": integer or 0}.
Use "" for unknown deadlines and 0 for unknown durations. Reply with the JSON array only.

Message:
`

// DefaultAssistantService answers owner messages through the LLM fallback
// chain and hands plan-day turns to the planner.
type DefaultAssistantService struct {
	Chain    *FallbackChain
	CtxStore *RedisContextStore
	Planner  planner.PlannerService
	Logger   *zap.Logger
}

func NewDefaultAssistantService(chain *FallbackChain, ctxStore *RedisContextStore, plannerSvc planner.PlannerService, logger *zap.Logger) *DefaultAssistantService {
	return &DefaultAssistantService{
		Chain:    chain,
		CtxStore: ctxStore,
		Planner:  plannerSvc,
		Logger:   logger,
	}
}

func (s *DefaultAssistantService) ProcessUserInput(ctx context.Context, req models.AssistRequest) (*models.AssistResponse, error) {
	aiCtx, err := s.CtxStore.Get(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	intent := detectIntent(req.Text)

	var resp *models.AssistResponse
	switch intent {
	case "plan":
		resp, err = s.handlePlan(ctx, req)
	default:
		resp, err = s.handleChat(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	aiCtx.LastIntent = resp.Intent
	aiCtx.TurnCount++
	if err := s.CtxStore.Set(ctx, req.OwnerID, aiCtx); err != nil {
		s.Logger.Warn("failed to save assistant context", zap.Error(err))
	}
	return resp, nil
}

func detectIntent(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "schedule") || strings.Contains(lower, "plan my") || strings.Contains(lower, "fit in") {
		return "plan"
	}
	return "chat"
}

func (s *DefaultAssistantService) handleChat(ctx context.Context, req models.AssistRequest) (*models.AssistResponse, error) {
	text, provider, err := s.Chain.GenerateContent(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	return &models.AssistResponse{
		Intent:       "chat",
		ResponseText: text,
		Provider:     provider,
	}, nil
}

func (s *DefaultAssistantService) handlePlan(ctx context.Context, req models.AssistRequest) (*models.AssistResponse, error) {
	raw, provider, err := s.Chain.GenerateContent(ctx, taskExtractionPrompt+req.Text)
	if err != nil {
		return nil, err
	}

	taskList, err := ParseExtractedTasks(raw)
	if err != nil || len(taskList) == 0 {
		// The model did not produce usable tasks; degrade to a chat answer
		// rather than scheduling garbage.
		s.Logger.Warn("task extraction failed, answering as chat", zap.Error(err))
		return s.handleChat(ctx, req)
	}

	result, err := s.Planner.PlanDay(ctx, taskList)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	text := fmt.Sprintf("Scheduled %d of %d tasks.", len(result.Events), len(taskList))
	if len(result.Unscheduled) > 0 {
		text += " Could not fit: " + strings.Join(result.Unscheduled, ", ") + "."
	}
	return &models.AssistResponse{
		Intent:       "plan",
		ResponseText: text,
		Provider:     provider,
		Schedule:     result,
	}, nil
}

type extractedTask struct {
	Description     string `json:"description"`
	Priority        string `json:"priority"`
	Deadline        string `json:"deadline"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ParseExtractedTasks converts the model's JSON array into engine tasks.
// Prose around the array is tolerated; models love to narrate.
func ParseExtractedTasks(raw string) ([]models.TwinTask, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var extracted []extractedTask
	if err := json.Unmarshal([]byte(raw[start:end+1]), &extracted); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}

	var out []models.TwinTask
	for _, e := range extracted {
		if strings.TrimSpace(e.Description) == "" {
			continue
		}
		task := models.TwinTask{
			Description:     strings.TrimSpace(e.Description),
			Priority:        models.Priority(strings.ToLower(e.Priority)),
			DurationMinutes: e.DurationMinutes,
		}
		if e.Deadline != "" {
			if deadline, err := utils.ParseDeadline(e.Deadline); err == nil {
				task.Deadline = &deadline
			}
		}
		out = append(out, task)
	}
	return out, nil
}
