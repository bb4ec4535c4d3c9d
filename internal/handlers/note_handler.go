package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/query"
	"github.com/Nanif/budget-api/internal/services"
)

// NoteHandler handles note-related requests.
type NoteHandler struct {
	noteService  services.NoteServicer
	auditService services.AuditServicer
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService services.NoteServicer, auditService services.AuditServicer) *NoteHandler {
	return &NoteHandler{noteService: noteService, auditService: auditService}
}

// CreateNoteRequest represents the request payload for creating a note.
type CreateNoteRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Content  string `json:"content" binding:"max=10000"`
	IsPinned bool   `json:"is_pinned"`
}

// UpdateNoteRequest represents the request payload for updating a note.
type UpdateNoteRequest struct {
	Title    string  `json:"title" binding:"omitempty,min=1,max=200"`
	Content  *string `json:"content" binding:"omitempty,max=10000"`
	IsPinned *bool   `json:"is_pinned"`
}

// CreateNote handles creating a new note.
// @Summary     Create a note
// @Description Create a new free-form note
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNoteRequest true "Note details"
// @Success     201 {object} models.Note "Note created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note, err := h.noteService.CreateNote(userID, req.Title, req.Content, req.IsPinned)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_NOTE", "note", note.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title})

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// GetNotes handles listing notes for the authenticated user.
// @Summary     Get notes
// @Description Get a paginated list of notes, pinned first then most recently updated
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Search in title and content"
// @Param       page   query int    false "Page number (default 1)"
// @Param       limit  query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} query.PageResponse[models.Note] "Paginated notes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes [get]
func (h *NoteHandler) GetNotes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.noteService.GetUserNotes(userID, services.NoteFilter{
		Search: c.Query("search"),
		Page:   query.ParsePage(c.Query("page"), c.Query("limit")),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNote handles retrieving a specific note.
// @Summary     Get note by ID
// @Description Get a specific note by ID
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Note ID"
// @Success     200 {object} models.Note "Note details"
// @Failure     400 {object} ErrorResponse "Invalid note ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Note not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	note, err := h.noteService.GetNoteByID(userID, noteID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

// UpdateNote handles updating an existing note.
// @Summary     Update note
// @Description Update an existing note's title, content, or pin
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Note ID"
// @Param       request body UpdateNoteRequest true "Updated note details"
// @Success     200 {object} models.Note "Updated note"
// @Failure     400 {object} ErrorResponse "Invalid input or note ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Note not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note, err := h.noteService.UpdateNote(userID, noteID, req.Title, req.Content, req.IsPinned)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_NOTE", "note", noteID, c.ClientIP(),
		map[string]interface{}{"title": req.Title})

	c.JSON(http.StatusOK, gin.H{"note": note})
}

// DeleteNote handles deleting a note.
// @Summary     Delete note
// @Description Delete a note by ID
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Note ID"
// @Success     200 {object} MessageResponse "Note deleted"
// @Failure     400 {object} ErrorResponse "Invalid note ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Note not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	noteID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.noteService.DeleteNote(userID, noteID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_NOTE", "note", noteID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
