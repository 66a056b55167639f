package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/service"
)

type eventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	EventDate   string  `json:"event_date" binding:"required"`
	EventTime   *string `json:"event_time"`
	Location    *string `json:"location"`
}

type eventUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	EventTime   *string `json:"event_time"`
	Location    *string `json:"location"`
}

func (h HandlerSet) ListEvents(c *gin.Context) {
	events, err := h.services.Events.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	event, err := h.services.Events.Create(c.Request.Context(), currentUser(c), service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h HandlerSet) GetEvent(c *gin.Context) {
	event, err := h.services.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h HandlerSet) UpdateEvent(c *gin.Context) {
	var req eventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	event, err := h.services.Events.Update(c.Request.Context(), currentUser(c), c.Param("id"), service.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h HandlerSet) DeleteEvent(c *gin.Context) {
	if err := h.services.Events.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	deleted(c, "Event")
}
