package routes

import (
	"autoshop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates    = "/estimates"
	PathWorkOrders   = "/work-orders"
	PathInvoices     = "/invoices"
	PathPayments     = "/payments"
	PathAppointments = "/appointments"
)

func addShopRoutes(
	rg *gin.RouterGroup,
	estimateHandler *handlers.EstimateHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	appointmentHandler *handlers.AppointmentHandler,
) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PATCH("/:id", estimateHandler.UpdateEstimate)
		estimates.DELETE("/:id", estimateHandler.DeleteEstimate)
		estimates.POST("/:id/line-items", estimateHandler.AddLineItem)
		estimates.PATCH("/:id/line-items/:item_id", estimateHandler.UpdateLineItem)
		estimates.DELETE("/:id/line-items/:item_id", estimateHandler.RemoveLineItem)
		estimates.POST("/:id/send", estimateHandler.SendEstimate)
		estimates.POST("/:id/approve", estimateHandler.ApproveEstimate)
		estimates.POST("/:id/reject", estimateHandler.RejectEstimate)
		estimates.POST("/:id/convert", estimateHandler.ConvertEstimate)
	}

	workOrders := rg.Group(PathWorkOrders)
	{
		workOrders.POST("", workOrderHandler.CreateWorkOrder)
		workOrders.GET("", workOrderHandler.ListWorkOrders)
		workOrders.GET("/:id", workOrderHandler.GetWorkOrder)
		workOrders.PATCH("/:id", workOrderHandler.UpdateWorkOrder)
		workOrders.DELETE("/:id", workOrderHandler.DeleteWorkOrder)
		workOrders.PATCH("/:id/status", workOrderHandler.ChangeStatus)
		workOrders.POST("/:id/jobs", workOrderHandler.AddJob)
		workOrders.PATCH("/:id/jobs/:job_id", workOrderHandler.UpdateJob)
		workOrders.DELETE("/:id/jobs/:job_id", workOrderHandler.RemoveJob)
		workOrders.POST("/:id/parts", workOrderHandler.AddPart)
		workOrders.PATCH("/:id/parts/:part_id", workOrderHandler.UpdatePart)
		workOrders.DELETE("/:id/parts/:part_id", workOrderHandler.RemovePart)
		workOrders.POST("/:id/invoice", workOrderHandler.GenerateInvoice)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PATCH("/:id", invoiceHandler.UpdateInvoice)
		invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		invoices.POST("/:id/line-items", invoiceHandler.AddLineItem)
		invoices.PATCH("/:id/line-items/:item_id", invoiceHandler.UpdateLineItem)
		invoices.DELETE("/:id/line-items/:item_id", invoiceHandler.RemoveLineItem)
		invoices.POST("/:id/send", invoiceHandler.SendInvoice)
		invoices.POST("/:id/cancel", invoiceHandler.CancelInvoice)
		invoices.GET("/:id/payments", paymentHandler.ListPaymentsByInvoice)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.ApplyPayment)
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.POST("/:id/refund", paymentHandler.RefundPayment)
	}

	appointments := rg.Group(PathAppointments)
	{
		appointments.GET("/slots", appointmentHandler.AvailableSlots)
		appointments.POST("", appointmentHandler.CreateAppointment)
		appointments.GET("", appointmentHandler.ListAppointments)
		appointments.GET("/:id", appointmentHandler.GetAppointment)
		appointments.PATCH("/:id", appointmentHandler.UpdateAppointment)
		appointments.POST("/:id/cancel", appointmentHandler.CancelAppointment)
	}
}
