package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "autoshop/internal/adapter/http/dto/request"
	response "autoshop/internal/adapter/http/dto/response"
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
	"autoshop/internal/usecase/interfaces"
	"autoshop/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidAppointmentPayload = pkg.NewDomainErrorSimple("INVALID_APPOINTMENT_INPUT", "Invalid appointment payload", http.StatusBadRequest)

// AppointmentHandler handles HTTP requests for the scheduler.

type AppointmentHandler struct {
	usecase usecase.IAppointmentUseCase
}

func NewAppointmentHandler(uc usecase.IAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{usecase: uc}
}

// CreateAppointment godoc
// @Summary  Book an appointment slot
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Param    appointment body request.CreateAppointmentRequest true "Appointment"
// @Success  201 {object} response.AppointmentResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var payload request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAppointmentPayload.HTTPStatus, errInvalidAppointmentPayload.ToHTTPError())
		return
	}

	a, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromAppointment(a))
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	a, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

// ListAppointments filters by date when ?date= is present, otherwise by
// optional ?customer_id=.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var (
		appointments []entities.Appointment
		err          error
	)
	if date := c.Query("date"); date != "" {
		appointments, err = h.usecase.ListByDate(c.Request.Context(), date)
	} else {
		appointments, err = h.usecase.List(c.Request.Context(), c.Query("customer_id"))
	}
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(appointments))
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var payload request.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAppointmentPayload.HTTPStatus, errInvalidAppointmentPayload.ToHTTPError())
		return
	}

	a, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var payload request.CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidAppointmentPayload.HTTPStatus, errInvalidAppointmentPayload.ToHTTPError())
			return
		}
	}

	a, err := h.usecase.Cancel(c.Request.Context(), c.Param("id"), payload.Reason)
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

// AvailableSlots godoc
// @Summary  List free slots for a date
// @Tags     appointments
// @Produce  json
// @Param    date query string true "Date (YYYY-MM-DD)"
// @Param    duration query int false "Duration in minutes"
// @Success  200 {object} response.SlotsResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /appointments/slots [get]
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	duration := 0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid duration", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		duration = parsed
	}

	slots, err := h.usecase.AvailableSlots(c.Request.Context(), date, duration)
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.SlotsResponse{Date: date, Slots: slots})
}

func mapAppointmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAppointmentID),
		errors.Is(err, usecase.ErrInvalidCustomerID),
		errors.Is(err, usecase.ErrInvalidVehicleID),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrInvalidSlot),
		errors.Is(err, usecase.ErrInvalidDuration),
		errors.Is(err, usecase.ErrVehicleNotOwned),
		errors.Is(err, usecase.ErrInvalidApptStatus),
		errors.Is(err, usecase.ErrCancelViaUpdate),
		errors.Is(err, usecase.ErrAppointmentLocked):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSlotTaken):
		return pkg.NewDomainErrorSimple("SLOT_TAKEN", "Slot already booked", http.StatusConflict)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Appointment changed concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrCustomerNotFound),
		errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
