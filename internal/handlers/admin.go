package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) AdminListUploads(c *gin.Context) {
	page := 1
	perPage := 50

	if v, err := strconv.Atoi(c.Query("perPage")); err == nil && v > 0 && v <= 100 {
		perPage = v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 1 {
		page = v
	}

	uploads, err := h.services.Uploads.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]uploadResponse, 0, len(uploads))
	for _, u := range uploads {
		items = append(items, toUploadResponse(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"page":    page,
		"perPage": perPage,
	})
}
