package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type memberRequest struct {
	Name         string  `json:"name" binding:"required"`
	Relationship string  `json:"relationship" binding:"required"`
	BirthDate    *string `json:"birth_date"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photo_url"`
	ParentID     *string `json:"parent_id"`
}

type memberUpdateRequest struct {
	Name         *string `json:"name"`
	Relationship *string `json:"relationship"`
	BirthDate    *string `json:"birth_date"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photo_url"`
	ParentID     *string `json:"parent_id"`
}

func (h HandlerSet) ListMembers(c *gin.Context) {
	members, err := h.services.Members.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponses(members))
}

func (h HandlerSet) CreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.services.Members.Create(c.Request.Context(), currentUser(c), service.MemberInput{
		Name:         req.Name,
		Relationship: req.Relationship,
		BirthDate:    req.BirthDate,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
		ParentID:     req.ParentID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h HandlerSet) GetMember(c *gin.Context) {
	member, err := h.services.Members.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h HandlerSet) UpdateMember(c *gin.Context) {
	var req memberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.services.Members.Update(c.Request.Context(), currentUser(c), c.Param("id"), models.MemberPatch{
		Name:         req.Name,
		Relationship: req.Relationship,
		BirthDate:    req.BirthDate,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
		ParentID:     req.ParentID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h HandlerSet) DeleteMember(c *gin.Context) {
	if err := h.services.Members.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	deleted(c, "Member")
}

// ListPublicMembers serves the landing page listing, from cache when warm.
func (h HandlerSet) ListPublicMembers(c *gin.Context) {
	ctx := c.Request.Context()

	if h.publicCache != nil {
		payload, ok, err := h.publicCache.Members(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("read public members cache failed")
		}
		if ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	members, err := h.services.Members.ListPublic(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	payload, err := json.Marshal(toMemberResponses(members))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.publicCache != nil {
		if err := h.publicCache.StoreMembers(ctx, payload); err != nil {
			h.log.Warn().Err(err).Msg("store public members cache failed")
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h HandlerSet) GetPublicMember(c *gin.Context) {
	member, err := h.services.Members.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}
