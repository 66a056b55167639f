package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type photoRequest struct {
	PhotoURL string  `json:"photo_url" binding:"required"`
	Caption  *string `json:"caption"`
}

type publicUserResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	PhotoURL *string         `json:"photo_url"`
	Photos   []photoResponse `json:"photos"`
}

func (h HandlerSet) ListMemberPhotos(c *gin.Context) {
	photos, err := h.services.Albums.MemberPhotos(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPhotoResponses(photos))
}

func (h HandlerSet) AddMemberPhoto(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	photo, err := h.services.Albums.AddMemberPhoto(c.Request.Context(), currentUser(c), c.Param("id"), service.PhotoInput{
		PhotoURL: req.PhotoURL,
		Caption:  req.Caption,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func (h HandlerSet) DeleteMemberPhoto(c *gin.Context) {
	if err := h.services.Albums.DeleteMemberPhoto(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("photoId")); err != nil {
		h.writeError(c, err)
		return
	}
	deleted(c, "Photo")
}

func (h HandlerSet) ListMyPhotos(c *gin.Context) {
	photos, err := h.services.Albums.UserPhotos(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPhotoResponses(photos))
}

func (h HandlerSet) AddMyPhoto(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	photo, err := h.services.Albums.AddUserPhoto(c.Request.Context(), currentUser(c), service.PhotoInput{
		PhotoURL: req.PhotoURL,
		Caption:  req.Caption,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func (h HandlerSet) DeleteMyPhoto(c *gin.Context) {
	if err := h.services.Albums.DeleteUserPhoto(c.Request.Context(), currentUser(c), c.Param("photoId")); err != nil {
		h.writeError(c, err)
		return
	}
	deleted(c, "Photo")
}

func (h HandlerSet) PublicUser(c *gin.Context) {
	profile, err := h.services.Albums.PublicProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, publicUserResponse{
		ID:       profile.ID,
		Name:     profile.Name,
		PhotoURL: profile.PhotoURL,
		Photos:   toPhotoResponses(profile.Photos),
	})
}
