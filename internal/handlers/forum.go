package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type postRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type replyRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h HandlerSet) ListPosts(c *gin.Context) {
	posts, err := h.services.Forum.ListPosts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.services.Forum.CreatePost(c.Request.Context(), currentUser(c), service.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h HandlerSet) GetPost(c *gin.Context) {
	post, err := h.services.Forum.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h HandlerSet) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.services.Forum.UpdatePost(c.Request.Context(), currentUser(c), c.Param("id"), service.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h HandlerSet) DeletePost(c *gin.Context) {
	if err := h.services.Forum.DeletePost(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	deleted(c, "Post")
}

func (h HandlerSet) AddReply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	reply, err := h.services.Forum.AddReply(c.Request.Context(), currentUser(c), c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReplyResponse(reply))
}

func (h HandlerSet) DeleteReply(c *gin.Context) {
	if err := h.services.Forum.DeleteReply(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("replyId")); err != nil {
		h.writeError(c, err)
		return
	}
	deleted(c, "Reply")
}
