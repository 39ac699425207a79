package handlers

import (
	"errors"
	"log"
	"net/http"

	request "autoshop/internal/adapter/http/dto/request"
	response "autoshop/internal/adapter/http/dto/response"
	"autoshop/internal/usecase"
	"autoshop/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for invoice payments and refunds.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// ApplyPayment godoc
// @Summary  Apply a payment to an open invoice
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    payment body request.ApplyPaymentRequest true "Payment"
// @Success  201 {object} response.PaymentResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /payments [post]
func (h *PaymentHandler) ApplyPayment(c *gin.Context) {
	var payload request.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] apply start invoice_id=%s amount=%.2f method=%s", payload.InvoiceID, payload.Amount, payload.Method)

	created, err := h.usecase.Apply(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[payment][handler] apply failed invoice_id=%s err=%v", payload.InvoiceID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] apply success invoice_id=%s payment_id=%s status=%s", created.InvoiceID, created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// RefundPayment godoc
// @Summary  Refund a completed payment
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id path string true "Payment id"
// @Param    refund body request.RefundPaymentRequest true "Refund reason"
// @Success  200 {object} response.PaymentResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /payments/{id}/refund [post]
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID := c.Param("id")
	var payload request.RefundPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid refund payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] refund start payment_id=%s", paymentID)

	refunded, err := h.usecase.Refund(c.Request.Context(), paymentID, payload.Reason)
	if err != nil {
		log.Printf("[payment][handler] refund failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] refund success payment_id=%s status=%s", refunded.ID, refunded.Status)

	c.JSON(http.StatusOK, response.FromPayment(refunded))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListPaymentsByInvoice returns every payment recorded against an invoice.
func (h *PaymentHandler) ListPaymentsByInvoice(c *gin.Context) {
	list, err := h.usecase.ListByInvoiceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(list))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidInvoiceID),
		errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrOverpayment),
		errors.Is(err, usecase.ErrInvoiceClosed),
		errors.Is(err, usecase.ErrPaymentNotRefundable),
		errors.Is(err, usecase.ErrRefundReasonMissing):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentRace):
		return pkg.NewDomainErrorSimple("PAYMENT_CONFLICT", "Invoice changed while applying payment, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound), errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
