package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/xuri/excelize/v2"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	svc service.TaskService
}

func NewExportHandler(svc service.TaskService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Handle handles GET /tasks/export, streaming the caller's task list as an
// .xlsx download in the same order as GET /tasks.
func (h *ExportHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()
	identity := auth.IdentityFrom(c)

	tasks, err := h.svc.List(ctx, identity.Subject)
	if err != nil {
		return mapError(c, err, "task not found")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Tasks"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		logger.ErrorLog(ctx, "failed to prepare export sheet: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate export")
	}

	headers := []string{"Title", "Completed", "Completed At", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for row, task := range tasks {
		completedAt := ""
		if task.CompletedAt != nil {
			completedAt = task.CompletedAt.Format("2006-01-02 15:04:05")
		}
		values := []any{task.Title, task.Completed, completedAt, task.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, exportContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tasks.xlsx"`)
	return f.Write(c.Response().Writer)
}
