package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/service/routes"
)

type RouteHandler struct {
	service routes.RouteUseCase
}

type multiplierRangeRequest struct {
	StartDate  string  `json:"startDate" binding:"required"`
	EndDate    string  `json:"endDate" binding:"required"`
	Multiplier float64 `json:"multiplier" binding:"required"`
}

type effectivePriceResponse struct {
	RouteID string `json:"routeId"`
	Date    string `json:"date"`
	Price   int64  `json:"price"`
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.upsert)
	router.PUT("/:id/multipliers", h.setMultipliers)
	router.GET("/:id/price", h.effectivePrice)
	router.DELETE("/:id", h.remove)
}

func (h *RouteHandler) list(c *gin.Context) {
	routes, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) get(c *gin.Context) {
	route, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) upsert(c *gin.Context) {
	var route domain.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created := route.ID == ""
	saved, err := h.service.AddOrUpdate(c.Request.Context(), route)
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

func (h *RouteHandler) setMultipliers(c *gin.Context) {
	var req multiplierRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	route, err := h.service.SetMultiplierRange(c.Request.Context(), c.Param("id"), req.StartDate, req.EndDate, req.Multiplier)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) effectivePrice(c *gin.Context) {
	id := c.Param("id")
	date := c.Query("date")
	price, err := h.service.EffectivePrice(c.Request.Context(), id, date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, effectivePriceResponse{RouteID: id, Date: date, Price: price})
}

func (h *RouteHandler) remove(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
