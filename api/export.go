package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/export"
)

type ExportHandler struct {
	exporter *export.Exporter
}

func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

func (h *ExportHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings.csv", h.bookingsCSV)
	router.GET("/flights.csv", h.flightsCSV)
	router.GET("/finance.csv", h.financeCSV)
	router.GET("/snapshot.json", h.snapshot)
}

func (h *ExportHandler) bookingsCSV(c *gin.Context) {
	h.csv(c, "bookings.csv", h.exporter.BookingsCSV)
}

func (h *ExportHandler) flightsCSV(c *gin.Context) {
	h.csv(c, "flights.csv", h.exporter.FlightsCSV)
}

func (h *ExportHandler) financeCSV(c *gin.Context) {
	h.csv(c, "finance.csv", h.exporter.FinanceCSV)
}

func (h *ExportHandler) csv(c *gin.Context, filename string, render func(ctx context.Context) (string, error)) {
	body, err := render(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func (h *ExportHandler) snapshot(c *gin.Context) {
	doc, err := h.exporter.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="snapshot.json"`)
	c.Data(http.StatusOK, "application/json", doc)
}
