package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scribehq/scribe/internal/services"
	"github.com/scribehq/scribe/pkg/errors"
	"github.com/scribehq/scribe/pkg/response"
)

// ProfileHandler manages the authenticated account's profile.
type ProfileHandler struct {
	auth *services.AuthService
}

func NewProfileHandler(auth *services.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

type profileRequest struct {
	FirstName       string `json:"first_name" validate:"max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url,max=500"`
}

// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req profileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.auth.UpdateProfile(requestContext(c), userID, services.ProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
