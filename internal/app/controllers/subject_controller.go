package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/app/services"
	"github.com/campuscompanion/campusplus/internal/middleware"
)

// SubjectController handles the subject picker endpoint.
type SubjectController struct {
	subjectService *services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService *services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// ListSubjects returns the subjects for the requested department (the
// caller's own department when the query is omitted).
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	department := ctx.Query("department")
	if department == "" {
		department = session.Department
	}

	subjects, err := c.subjectService.ListForDepartment(ctx.Request.Context(), department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: subjects})
}
