package handlers

import (
	"net/http"
	"time"

	scheduleRepo "twinmind/database/repository/schedule"
	"twinmind/models"
	"twinmind/services/planner"
	"twinmind/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the planner over HTTP.
type ScheduleHandler struct {
	Planner planner.PlannerService
	Repo    scheduleRepo.ScheduleRepository
}

// NewScheduleHandler returns a ScheduleHandler.
func NewScheduleHandler(p planner.PlannerService, repo scheduleRepo.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{Planner: p, Repo: repo}
}

type taskInput struct {
	Description     string `json:"description" binding:"required"`
	Priority        string `json:"priority"`
	Deadline        string `json:"deadline"`
	DurationMinutes int    `json:"durationMinutes"`
}

type planRequest struct {
	Tasks []taskInput `json:"tasks" binding:"required"`
}

// PlanHandler accepts a batch of tasks, schedules them, and returns the
// resulting placements plus any tasks that could not fit.
func (h *ScheduleHandler) PlanHandler(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if len(req.Tasks) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "no tasks supplied")
		return
	}

	tasks := make([]models.TwinTask, 0, len(req.Tasks))
	for _, in := range req.Tasks {
		task := models.TwinTask{
			Description:     in.Description,
			Priority:        models.Priority(in.Priority),
			DurationMinutes: in.DurationMinutes,
		}
		if in.Deadline != "" {
			dl, err := utils.ParseDeadline(in.Deadline)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid deadline", err.Error())
				return
			}
			task.Deadline = &dl
		}
		tasks = append(tasks, task)
	}

	result, err := h.Planner.PlanDay(c.Request.Context(), tasks)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "scheduling failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// AgendaHandler lists stored events in a time range. Without query
// parameters it covers the next seven days.
func (h *ScheduleHandler) AgendaHandler(c *gin.Context) {
	now := time.Now()
	from := now
	to := now.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		t, err := utils.ParseDeadline(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from", err.Error())
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := utils.ParseDeadline(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid to", err.Error())
			return
		}
		to = t
	}
	if !to.After(from) {
		utils.JSONError(c, http.StatusBadRequest, "invalid range", "'to' must be after 'from'")
		return
	}

	events, err := h.Planner.Agenda(c.Request.Context(), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list agenda", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CancelEventHandler removes a stored event by id.
func (h *ScheduleHandler) CancelEventHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "missing event id")
		return
	}
	if err := h.Planner.CancelEvent(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "event not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// NotificationsHandler lists recently delivered reminders.
func (h *ScheduleHandler) NotificationsHandler(c *gin.Context) {
	notifications, err := h.Repo.ListNotifications(c.Request.Context(), 50)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
