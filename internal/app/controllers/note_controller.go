package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/app/services"
	"github.com/campuscompanion/campusplus/internal/middleware"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter %q", idStr)
	}
	return id, nil
}

// requireSession pulls the authenticated session or writes a 401. JWTAuth
// guarantees it is set on protected routes; this guards against wiring
// mistakes.
func requireSession(ctx *gin.Context) (models.Session, bool) {
	session, ok := middleware.GetSession(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
	}
	return session, ok
}

// NoteController handles the notes pipeline endpoints.
type NoteController struct {
	noteService   *services.NoteService
	uploadService *services.UploadService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService, uploadService *services.UploadService) *NoteController {
	return &NoteController{
		noteService:   noteService,
		uploadService: uploadService,
	}
}

// ListNotes returns the notes visible to the caller, filtered and paginated.
func (c *NoteController) ListNotes(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	notes, err := c.noteService.ListNotes(ctx.Request.Context(), session, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notes})
}

// Upload receives the file for a note-to-be and stores it on the configured
// backend. The returned reference is echoed back on create.
func (c *NoteController) Upload(ctx *gin.Context) {
	if _, ok := requireSession(ctx); !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required").WithField("file"),
		})
		return
	}

	result, err := c.uploadService.Upload(ctx.Request.Context(), fileHeader, "notes")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: result})
}

// Create persists the note metadata referencing a completed upload.
func (c *NoteController) Create(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note payload"),
		})
		return
	}

	note, err := c.uploadService.Submit(ctx.Request.Context(), session, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: note})
}

// RecordAccess resolves the note's view/download URLs and counts the access.
func (c *NoteController) RecordAccess(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	noteID, err := parseIDParam(ctx, "noteId")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	access, err := c.noteService.RecordAccess(ctx.Request.Context(), session, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: access})
}

// SetApproval flips the approval gate on a note. The route restricts it to
// class representatives and admins.
func (c *NoteController) SetApproval(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	noteID, err := parseIDParam(ctx, "noteId")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	var req dto.ApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid approval payload"),
		})
		return
	}

	note, err := c.noteService.SetApproval(ctx.Request.Context(), session, noteID, *req.Approved)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: note})
}
