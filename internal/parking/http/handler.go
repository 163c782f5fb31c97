package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/response"
)

type Handler struct {
	service parking.Service
	now     func() time.Time
}

func NewHandler(service parking.Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{service: service, now: now}
}

//
// GET /v1/admin/export
//

func (h *Handler) Export(c *gin.Context) {
	blob, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+parking.ExportFilename(h.now())+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", blob)
}
