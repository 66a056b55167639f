package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/middleware"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type errorMapping struct {
	err    error
	status int
	detail string
}

var errorMappings = []errorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{service.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{service.ErrForbidden, http.StatusForbidden, "Not allowed to modify this resource"},
	{service.ErrNoFieldsToUpdate, http.StatusBadRequest, "No fields to update"},
	{service.ErrParentNotFound, http.StatusBadRequest, "Parent member not found"},
	{service.ErrParentCycle, http.StatusBadRequest, "Parent would create a cycle"},
	{repository.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{repository.ErrMemberNotFound, http.StatusNotFound, "Member not found"},
	{repository.ErrPhotoNotFound, http.StatusNotFound, "Photo not found"},
	{repository.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{repository.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{repository.ErrReplyNotFound, http.StatusNotFound, "Reply not found"},
	{repository.ErrUploadNotFound, http.StatusNotFound, "Upload not found"},
}

// writeError answers with {"detail": ...}. Validation failures carry their
// own message; unknown errors are logged and hidden.
func (h HandlerSet) writeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrValidation) {
		detail := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"detail": m.detail})
			return
		}
	}

	_ = c.Error(err)
	h.log.Error().Err(err).
		Str("path", c.Request.URL.Path).
		Str("request_id", middleware.RequestIDFrom(c)).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal_server_error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

func deleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted successfully"})
}
