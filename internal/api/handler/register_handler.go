package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/api/views"
	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

// RegisterHandler serves the self-registration page.
type RegisterHandler struct {
	registration ports.RegistrationService
	refs         ports.ReferenceService
	log          zerolog.Logger
}

func NewRegisterHandler(registration ports.RegistrationService, refs ports.ReferenceService, log zerolog.Logger) *RegisterHandler {
	return &RegisterHandler{registration: registration, refs: refs, log: log}
}

type registerRequest struct {
	Name     string    `form:"name"     json:"name"`
	Email    string    `form:"email"    json:"email"`
	Mobile   string    `form:"mobile"   json:"mobile"`
	Password string    `form:"password" json:"password"`
	StateID  domain.ID `form:"stateId"  json:"stateId"`
	CityID   domain.ID `form:"cityId"   json:"cityId"`
}

func (r registerRequest) toDomain() domain.Registration {
	return domain.Registration{
		Name:     r.Name,
		Email:    r.Email,
		Mobile:   r.Mobile,
		Password: r.Password,
		StateID:  r.StateID,
		CityID:   r.CityID,
	}
}

type registerView struct {
	Form   domain.Registration
	States []domain.State
	Cities []domain.City
}

// Show renders an empty registration form. A state_id query parameter
// preselects a state and lists its cities.
func (h *RegisterHandler) Show(c echo.Context) error {
	stateID, _ := parseID(c.QueryParam("state_id"))
	form := domain.Registration{StateID: stateID}
	page := views.Page{Title: "Register", Operator: operatorName(c)}
	page.Data, page.Error = h.viewFor(c, form)
	return c.Render(http.StatusOK, "register", page)
}

// Submit handles the registration form. Invalid input is reported on the
// form without contacting the remote service.
func (h *RegisterHandler) Submit(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		page := views.Page{Title: "Register", Operator: operatorName(c), Error: "invalid form"}
		page.Data, _ = h.viewFor(c, domain.Registration{})
		return c.Render(http.StatusBadRequest, "register", page)
	}
	reg := req.toDomain()

	res, err := h.registration.Register(c.Request().Context(), reg)
	if err != nil {
		status, msg, known := ErrorStatus(err)
		if !known {
			h.log.Error().Err(err).Msg("registration failed")
			msg = "Error registering user"
		}
		reg.Password = ""
		page := views.Page{Title: "Register", Operator: operatorName(c), Error: msg, Fields: FieldErrors(err)}
		page.Data, _ = h.viewFor(c, reg)
		return c.Render(status, "register", page)
	}

	msg := res.Message
	if msg == "" {
		msg = "User registered successfully!"
	}
	setFlash(c, msg)
	return c.Redirect(http.StatusSeeOther, "/users")
}

// viewFor loads the reference data the form needs. A lookup failure is
// returned as a banner message; the form still renders.
func (h *RegisterHandler) viewFor(c echo.Context, form domain.Registration) (registerView, string) {
	v := registerView{Form: form}
	ctx := c.Request().Context()

	states, err := h.refs.States(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("register: states lookup failed")
		return v, "Error fetching states"
	}
	v.States = states

	cities, err := h.refs.Cities(ctx, form.StateID)
	if err != nil {
		h.log.Warn().Err(err).Msg("register: cities lookup failed")
		return v, "Error fetching cities"
	}
	v.Cities = cities
	return v, ""
}
