package appointment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carebook/carebook/internal/platform/validate"
	"github.com/carebook/carebook/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.List)
	api.POST("/appointments", h.Create)
	api.GET("/appointments/:id", h.Get)
	api.PATCH("/appointments/:id", h.Update)
	api.DELETE("/appointments/:id", h.Delete)
	api.POST("/appointments/:id/cancel", h.Cancel)
	api.POST("/appointments/:id/attend", h.Attend)
	api.POST("/appointments/sweep", h.Sweep)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	a, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if a == nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

// List supports filter query params (patient, status, clinician,
// department); the bare path pages through everything. Filters are mutually
// exclusive and the first recognized one wins.
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("patient"); raw != "" {
		nhs, ok := validate.FormatNHSNumber(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid NHS number")
		}
		items, err := h.svc.ListByPatient(ctx, nhs)
		return h.filteredList(c, items, err)
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment status")
		}
		items, err := h.svc.ListByStatus(ctx, status)
		return h.filteredList(c, items, err)
	}

	if clinician := c.QueryParam("clinician"); clinician != "" {
		items, err := h.svc.ListByClinician(ctx, clinician)
		return h.filteredList(c, items, err)
	}

	if department := c.QueryParam("department"); department != "" {
		items, err := h.svc.ListByDepartment(ctx, department)
		return h.filteredList(c, items, err)
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(emptyToSlice(items), total, pg.Limit, pg.Offset))
}

func (h *Handler) filteredList(c echo.Context, items []*Appointment, err error) error {
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(emptyToSlice(items), len(items), len(items), 0))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return mapServiceError(err)
	}
	if a == nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	deleted, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Cancel(c echo.Context) error {
	return h.statusAction(c, h.svc.Cancel)
}

func (h *Handler) Attend(c echo.Context) error {
	return h.statusAction(c, h.svc.Attend)
}

func (h *Handler) statusAction(c echo.Context, action func(ctx context.Context, id uuid.UUID) (*Appointment, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	a, err := action(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	if a == nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

// Sweep triggers an immediate overdue sweep and returns the appointments
// it marked missed.
func (h *Handler) Sweep(c echo.Context) error {
	swept, err := h.svc.SweepOverdue(c.Request().Context(), time.Time{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"swept": emptyToSlice(swept),
		"count": len(swept),
	})
}

// mapServiceError translates service errors into HTTP errors: business-rule
// transition violations become 409, rejected input becomes 400, anything else
// (a failing store, mostly) is a 500.
func mapServiceError(err error) error {
	var te *TransitionError
	if errors.As(err, &te) {
		return echo.NewHTTPError(http.StatusConflict, te.Error())
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// emptyToSlice keeps empty lists encoding as [] rather than null.
func emptyToSlice(items []*Appointment) []*Appointment {
	if items == nil {
		return []*Appointment{}
	}
	return items
}
