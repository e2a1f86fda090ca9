package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/service/finance"
)

type FinanceHandler struct {
	service finance.FinanceUseCase
}

type refundRequest struct {
	Policy string `json:"policy" binding:"required"`
	Amount int64  `json:"amount,omitempty"`
}

type flightBreakdownResponse struct {
	FlightID string `json:"flightId"`
	Income   int64  `json:"income"`
	Expense  int64  `json:"expense"`
	Net      int64  `json:"net"`
}

func NewFinanceHandler(service finance.FinanceUseCase) *FinanceHandler {
	return &FinanceHandler{service: service}
}

func (h *FinanceHandler) Register(router *gin.RouterGroup) {
	router.GET("/entries", h.listEntries)
	router.POST("/entries", h.addEntry)
	router.DELETE("/entries/:id", h.removeEntry)
	router.GET("/summary", h.summary)
	router.POST("/refunds/:bookingId", h.refund)
	router.GET("/flights/:id", h.flightBreakdown)
}

func (h *FinanceHandler) listEntries(c *gin.Context) {
	entries, err := h.service.ListEntries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *FinanceHandler) addEntry(c *gin.Context) {
	var req finance.EntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.service.AddEntry(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *FinanceHandler) removeEntry(c *gin.Context) {
	if err := h.service.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FinanceHandler) summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *FinanceHandler) refund(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.service.ExecuteRefund(c.Request.Context(), c.Param("bookingId"), finance.RefundPolicy(req.Policy), req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *FinanceHandler) flightBreakdown(c *gin.Context) {
	id := c.Param("id")
	income, expense, err := h.service.FlightBreakdown(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flightBreakdownResponse{
		FlightID: id,
		Income:   income,
		Expense:  expense,
		Net:      income - expense,
	})
}
