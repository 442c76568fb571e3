package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ListHandler handles GET /tasks.
func (h *TaskHandler) ListHandler(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	tasks, err := h.svc.List(c.Request().Context(), identity.Subject)
	if err != nil {
		return mapError(c, err, "task not found")
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateHandler handles POST /tasks.
func (h *TaskHandler) CreateHandler(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.svc.Create(c.Request().Context(), identity.Subject, req.Title)
	if err != nil {
		return mapError(c, err, "task not found")
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateHandler handles PUT /tasks/:id.
func (h *TaskHandler) UpdateHandler(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.svc.Update(c.Request().Context(), c.Param("id"), identity.Subject, req.Title, req.Completed)
	if err != nil {
		return mapError(c, err, "task not found")
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteHandler handles DELETE /tasks/:id.
func (h *TaskHandler) DeleteHandler(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), identity.Subject); err != nil {
		return mapError(c, err, "task not found")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}
