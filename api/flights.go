package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type searchRequest struct {
	Origin        string `json:"origin" form:"origin"`
	Destination   string `json:"destination" form:"destination"`
	DepartureDate string `json:"departureDate" form:"departureDate"`
	ReturnDate    string `json:"returnDate" form:"returnDate"`
	Travelers     int    `json:"travelers" form:"travelers"`
	TripType      string `json:"tripType" form:"tripType"`
	Mode          string `json:"mode" form:"mode"`
}

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/search", h.search)
	router.GET("/next", h.nextAvailable)
	router.POST("/expand", h.expand)
	router.PATCH("/:id/availability", h.setAvailability)
	router.DELETE("/:id", h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) search(c *gin.Context) {
	params, mode, err := searchParamsFrom(c)
	if err != nil {
		writeError(c, err)
		return
	}
	results, err := h.service.Search(c.Request.Context(), params, mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *FlightHandler) nextAvailable(c *gin.Context) {
	params, _, err := searchParamsFrom(c)
	if err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.NextAvailable(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) expand(c *gin.Context) {
	var req flights.ExpandInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.ExpandSchedule(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FlightHandler) setAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) remove(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func searchParamsFrom(c *gin.Context) (domain.SearchParams, domain.SearchMode, error) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return domain.SearchParams{}, "", domain.Validationf("invalid search query: %v", err)
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
	return params, domain.SearchMode(req.Mode), nil
}
