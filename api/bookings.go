package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/auth"
	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/mine", h.listMine)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PATCH("/:id/status", h.updateStatus)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	user := auth.UserFrom(c)
	if user == nil {
		writeError(c, domain.ErrAuthRequired)
		return
	}
	bookings, err := h.service.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	booked, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booked)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user := auth.UserFrom(c); user != nil {
		req.UserID = user.ID
		if req.UserName == "" {
			req.UserName = user.Name
		}
		if req.UserEmail == "" {
			req.UserEmail = user.Email
		}
	}
	booked, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booked)
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
