package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/api/views"
	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/listview"
	"github.com/99minutos/admin-console/internal/core/ports"
)

// UserHandler serves the user list and the edit dialog, as pages and as JSON.
type UserHandler struct {
	users    ports.UserService
	store    ports.UserStore
	refs     ports.ReferenceService
	pageSize int
	log      zerolog.Logger
}

func NewUserHandler(
	users ports.UserService,
	store ports.UserStore,
	refs ports.ReferenceService,
	pageSize int,
	log zerolog.Logger,
) *UserHandler {
	if pageSize < 1 {
		pageSize = listview.DefaultPageSize
	}
	return &UserHandler{users: users, store: store, refs: refs, pageSize: pageSize, log: log}
}

type editRequest struct {
	Name    string        `form:"name"    json:"name"`
	Email   string        `form:"email"   json:"email"`
	Mobile  string        `form:"mobile"  json:"mobile"`
	RoleID  domain.Role   `form:"roleId"  json:"roleId"`
	Status  domain.Status `form:"status"  json:"status"`
	StateID domain.ID     `form:"stateId" json:"stateId"`
	CityID  domain.ID     `form:"cityId"  json:"cityId"`
}

func (r editRequest) toDomain() domain.UserEdit {
	return domain.UserEdit{
		Name:    r.Name,
		Email:   r.Email,
		Mobile:  r.Mobile,
		RoleID:  r.RoleID,
		Status:  r.Status,
		StateID: r.StateID,
		CityID:  r.CityID,
	}
}

type editView struct {
	UserID domain.ID
	Form   domain.User
	States []domain.State
	Cities []domain.City
}

type usersResponse struct {
	Users    []domain.User `json:"users"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
	Pages    int           `json:"pages"`
	Query    string        `json:"query,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// view reloads the store and derives the page asked for by the query string.
// A failed reload keeps the previous records; its message is returned for
// this request only, since the store's own error outlives the failure.
func (h *UserHandler) view(c echo.Context) (listview.View, string) {
	var loadErr string
	if err := h.users.Refresh(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("user list refresh failed")
		loadErr = err.Error()
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || size < 1 {
		size = h.pageSize
	}

	ctrl := listview.NewController(h.store,
		listview.WithQuery(c.QueryParam("q")),
		listview.WithPage(page, size),
	)
	defer ctrl.Close()
	return ctrl.View(), loadErr
}

// List renders the user table.
func (h *UserHandler) List(c echo.Context) error {
	v, loadErr := h.view(c)
	return c.Render(http.StatusOK, "users", views.Page{
		Title:    "Users",
		Operator: operatorName(c),
		Notice:   popFlash(c),
		Error:    loadErr,
		Data:     v,
	})
}

// ListJSON handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        q          query     string  false  "Case-insensitive search over name, email and mobile"
// @Param        page       query     int     false  "1-based page"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  usersResponse
// @Router       /api/users [get]
func (h *UserHandler) ListJSON(c echo.Context) error {
	v, loadErr := h.view(c)
	return c.JSON(http.StatusOK, usersResponse{
		Users:    redact(v.Items),
		Page:     v.Page.Page,
		PageSize: v.PageSize,
		Total:    v.Total,
		Pages:    v.Pages,
		Query:    v.Query,
		Error:    loadErr,
	})
}

// ShowEdit renders the edit dialog for one user, prefilled with the record
// held locally and the cities of its state.
func (h *UserHandler) ShowEdit(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	user, err := h.users.Find(id)
	if err != nil {
		// The store may not have been loaded yet in this process.
		if rerr := h.users.Refresh(c.Request().Context()); rerr == nil {
			user, err = h.users.Find(id)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
	}

	user.Password = ""
	page := views.Page{Title: "Edit User", Operator: operatorName(c)}
	page.Data, page.Error = h.editViewFor(c, id, *user)
	return c.Render(http.StatusOK, "edit", page)
}

// Edit handles the edit form. Validation and remote failures re-render the
// form with the error so the operator can correct and resubmit.
func (h *UserHandler) Edit(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	var req editRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	edit := req.toDomain()

	if _, err := h.users.Edit(c.Request().Context(), operatorName(c), id, edit); err != nil {
		status, msg, known := ErrorStatus(err)
		if !known {
			h.log.Error().Err(err).Msg("user update failed")
			msg = "Failed to update user!"
		}
		page := views.Page{Title: "Edit User", Operator: operatorName(c), Error: msg, Fields: FieldErrors(err)}
		page.Data, _ = h.editViewFor(c, id, edit.Apply(domain.User{UserID: id}))
		return c.Render(status, "edit", page)
	}

	setFlash(c, "User updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/users")
}

// UpdateJSON handles PUT /api/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "User id"
// @Param        body  body      editRequest  true  "Edited fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateJSON(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	var req editRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	edit := req.toDomain()
	if err := c.Validate(edit); err != nil {
		return err
	}

	updated, err := h.users.Edit(c.Request().Context(), operatorName(c), id, edit)
	if err != nil {
		return err
	}
	updated.Password = ""
	return c.JSON(http.StatusOK, updated)
}

// redact drops passwords from records leaving the process.
func redact(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		u.Password = ""
		out[i] = u
	}
	return out
}

func (h *UserHandler) editViewFor(c echo.Context, id domain.ID, form domain.User) (editView, string) {
	v := editView{UserID: id, Form: form}
	ctx := c.Request().Context()

	states, err := h.refs.States(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("edit: states lookup failed")
		return v, "Error fetching states"
	}
	v.States = states

	cities, err := h.refs.Cities(ctx, form.StateID)
	if err != nil {
		h.log.Warn().Err(err).Msg("edit: cities lookup failed")
		return v, "Error fetching cities"
	}
	v.Cities = cities
	return v, ""
}
