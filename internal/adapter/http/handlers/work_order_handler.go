package handlers

import (
	"errors"
	"net/http"

	request "autoshop/internal/adapter/http/dto/request"
	response "autoshop/internal/adapter/http/dto/response"
	"autoshop/internal/adapter/http/middleware"
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
	"autoshop/internal/usecase/interfaces"
	"autoshop/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidWorkOrderPayload = pkg.NewDomainErrorSimple("INVALID_WORK_ORDER_INPUT", "Invalid work order payload", http.StatusBadRequest)

// WorkOrderHandler handles HTTP requests for work orders: the status
// machine, job/part editing and invoice generation.

type WorkOrderHandler struct {
	usecase usecase.IWorkOrderUseCase
}

func NewWorkOrderHandler(uc usecase.IWorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{usecase: uc}
}

// CreateWorkOrder godoc
// @Summary  Create a work order
// @Tags     work-orders
// @Accept   json
// @Produce  json
// @Param    work_order body request.CreateWorkOrderRequest true "Work order"
// @Success  201 {object} response.WorkOrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /work-orders [post]
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var payload request.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.Create(c.Request.Context(), payload.ToInput(middleware.Actor(c)))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	wo, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context(), c.Query("customer_id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrders(list))
}

func (h *WorkOrderHandler) UpdateWorkOrder(c *gin.Context) {
	var payload request.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

// ChangeStatus godoc
// @Summary  Move a work order through its status machine
// @Tags     work-orders
// @Accept   json
// @Produce  json
// @Param    id path string true "Work order id"
// @Param    status body request.ChangeWorkOrderStatusRequest true "Target status"
// @Success  200 {object} response.WorkOrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /work-orders/{id}/status [patch]
func (h *WorkOrderHandler) ChangeStatus(c *gin.Context) {
	var payload request.ChangeWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.ChangeStatus(c.Request.Context(), c.Param("id"), entities.WorkOrderStatus(payload.Status))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) AddJob(c *gin.Context) {
	var payload request.JobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.AddJob(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) UpdateJob(c *gin.Context) {
	var payload request.JobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.UpdateJob(c.Request.Context(), c.Param("id"), c.Param("job_id"), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) RemoveJob(c *gin.Context) {
	wo, err := h.usecase.RemoveJob(c.Request.Context(), c.Param("id"), c.Param("job_id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) AddPart(c *gin.Context) {
	var payload request.PartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.AddPart(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) UpdatePart(c *gin.Context) {
	var payload request.PartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	wo, err := h.usecase.UpdatePart(c.Request.Context(), c.Param("id"), c.Param("part_id"), payload.ToInput())
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

func (h *WorkOrderHandler) RemovePart(c *gin.Context) {
	wo, err := h.usecase.RemovePart(c.Request.Context(), c.Param("id"), c.Param("part_id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(wo))
}

// GenerateInvoice godoc
// @Summary  Generate the invoice for a completed work order
// @Tags     work-orders
// @Produce  json
// @Param    id path string true "Work order id"
// @Success  201 {object} response.InvoiceResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /work-orders/{id}/invoice [post]
func (h *WorkOrderHandler) GenerateInvoice(c *gin.Context) {
	invoice, err := h.usecase.GenerateInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapWorkOrderError(err error) *pkg.AppError {
	var transition *entities.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", transition.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidWorkOrderID),
		errors.Is(err, usecase.ErrInvalidCustomerID),
		errors.Is(err, usecase.ErrInvalidVehicleID),
		errors.Is(err, usecase.ErrInvalidJob),
		errors.Is(err, usecase.ErrInvalidPart),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrVehicleNotOwned),
		errors.Is(err, usecase.ErrWorkOrderTerminal),
		errors.Is(err, usecase.ErrWorkOrderNotCompleted):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderHasInvoice):
		return pkg.NewDomainErrorSimple("WORK_ORDER_ALREADY_INVOICED", "Work order already has an invoice", http.StatusConflict)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Work order changed concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrWorkOrderNotFound),
		errors.Is(err, usecase.ErrCustomerNotFound),
		errors.Is(err, usecase.ErrVehicleNotFound),
		errors.Is(err, usecase.ErrJobNotFound),
		errors.Is(err, usecase.ErrPartNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
