package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chanwit-s/ticketfair/internal/dto"
	"github.com/chanwit-s/ticketfair/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// RegisterRoutes wires the event surface. Event creation is admin-only and
// sits behind the API-key middleware supplied by the caller.
func (h *EventHandler) RegisterRoutes(e *echo.Echo, apiKeyAuth echo.MiddlewareFunc) {
	e.GET("/events", h.ListEvents)
	e.GET("/events/:id", h.GetEvent)
	e.GET("/events/:id/price", h.GetPrice)
	e.POST("/events", h.CreateEvent, apiKeyAuth)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "name and date are required")
	}

	event := req.ToModel()
	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCapacity), errors.Is(err, service.ErrInvalidPriceBand):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event, nil))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, quote, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event, quote))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i], nil)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetPrice(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	quote, err := h.svc.Quote(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.PriceResponse{
		EventID:      id,
		CurrentPrice: quote.CurrentPrice,
		BasePrice:    quote.BasePrice,
		Adjustments:  quote.Adjustments,
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return uint(id), nil
}
