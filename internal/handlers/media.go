package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

func (h HandlerSet) UploadMedia(c *gin.Context) {
	user := currentUser(c)
	h.upload(c, &user)
}

// UploadPublicMedia backs the registration form, before an account exists.
func (h HandlerSet) UploadPublicMedia(c *gin.Context) {
	h.upload(c, nil)
}

func (h HandlerSet) upload(c *gin.Context, user *models.User) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}
	defer file.Close()

	result, err := h.services.Uploads.Upload(c.Request.Context(), service.UploadInput{
		User:   user,
		File:   file,
		Header: header.Header,
	})
	if err != nil {
		event := h.log.Warn().Err(err).Str("filename", header.Filename)
		if user != nil {
			event = event.Str("user_id", user.ID)
		}
		event.Msg("upload failed")
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": result.URL})
}
