package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scribehq/scribe/internal/services"
	"github.com/scribehq/scribe/pkg/errors"
	"github.com/scribehq/scribe/pkg/response"
)

// NoteHandler exposes note CRUD for the authenticated account.
type NoteHandler struct {
	notes *services.NoteService
}

func NewNoteHandler(notes *services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Content  string `json:"content"`
	Category string `json:"category" validate:"max=100"`
}

// GET /api/notes
func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	notes, err := h.notes.List(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, notes)
}

// POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req noteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	note, err := h.notes.Create(requestContext(c), userID, services.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, note)
}

// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	noteID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req noteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	note, err := h.notes.Update(requestContext(c), userID, noteID, services.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, note)
}

// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	noteID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.notes.Delete(requestContext(c), userID, noteID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
