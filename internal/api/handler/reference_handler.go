package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

// ReferenceHandler serves the state and city lookups the forms cascade on.
type ReferenceHandler struct {
	refs ports.ReferenceService
}

func NewReferenceHandler(refs ports.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// States handles GET /api/states.
//
// @Summary      List states
// @Tags         reference
// @Produce      json
// @Success      200  {array}   domain.State
// @Failure      502  {object}  ErrorResponse
// @Router       /api/states [get]
func (h *ReferenceHandler) States(c echo.Context) error {
	states, err := h.refs.States(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, states)
}

// Cities handles GET /api/cities?state_id=.
//
// @Summary      List the cities of a state
// @Tags         reference
// @Produce      json
// @Param        state_id  query     int  true  "State id"
// @Success      200       {array}   domain.City
// @Failure      400       {object}  ErrorResponse
// @Failure      502       {object}  ErrorResponse
// @Router       /api/cities [get]
func (h *ReferenceHandler) Cities(c echo.Context) error {
	stateID, err := parseID(c.QueryParam("state_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "state_id must be a number")
	}
	cities, err := h.refs.Cities(c.Request().Context(), stateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cities)
}

// parseID reads an optional numeric id. Empty means none selected.
func parseID(s string) (domain.ID, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.ID(n), nil
}

// ErrorResponse is the JSON error envelope of the /api routes.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
