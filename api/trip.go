package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/auth"
	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/service/trip"
)

type TripHandler struct {
	service trip.TripUseCase
}

type tripSearchRequest struct {
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Travelers     int    `json:"travelers"`
	TripType      string `json:"tripType"`
	Mode          string `json:"mode"`
}

type selectFlightRequest struct {
	FlightID string `json:"flightId" binding:"required"`
}

type setModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func NewTripHandler(service trip.TripUseCase) *TripHandler {
	return &TripHandler{service: service}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.newSession)
	router.GET("/:id", h.get)
	router.POST("/:id/search", h.search)
	router.PUT("/:id/mode", h.setMode)
	router.POST("/:id/outbound", h.selectOutbound)
	router.POST("/:id/return", h.selectReturn)
	router.POST("/:id/complete", h.complete)
	router.POST("/:id/reset", h.reset)
}

func (h *TripHandler) newSession(c *gin.Context) {
	sess, err := h.service.NewSession(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *TripHandler) get(c *gin.Context) {
	sess, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TripHandler) search(c *gin.Context) {
	var req tripSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Travelers == 0 {
		req.Travelers = 1
	}
	params := domain.SearchParams{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Travelers:     req.Travelers,
		TripType:      domain.TripType(req.TripType),
	}
	sess, err := h.service.Search(c.Request.Context(), c.Param("id"), params, domain.SearchMode(req.Mode))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TripHandler) setMode(c *gin.Context) {
	var req setModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.service.SetMode(c.Request.Context(), c.Param("id"), domain.SearchMode(req.Mode))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TripHandler) selectOutbound(c *gin.Context) {
	var req selectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.service.SelectOutbound(c.Request.Context(), c.Param("id"), req.FlightID, auth.UserFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TripHandler) selectReturn(c *gin.Context) {
	var req selectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.service.SelectReturn(c.Request.Context(), c.Param("id"), req.FlightID, auth.UserFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TripHandler) complete(c *gin.Context) {
	sess, err := h.service.Complete(c.Request.Context(), c.Param("id"), auth.UserFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TripHandler) reset(c *gin.Context) {
	sess, err := h.service.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
