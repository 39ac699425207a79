package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"autoshop/internal/adapter/http/handlers/mocks"
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_ApplyPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments", h.ApplyPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		uc.EXPECT().Apply(gomock.Any(), usecase.ApplyPaymentInput{
			InvoiceID: "inv-1",
			Amount:    100,
			Method:    entities.PaymentMethodCard,
		}).Return(entities.Payment{
			ID:        "pay-1",
			InvoiceID: "inv-1",
			Amount:    100,
			Method:    entities.PaymentMethodCard,
			Status:    entities.PaymentStatusCompleted,
		}, nil)

		r := gin.New()
		r.POST("/v1/payments", h.ApplyPayment)

		body := `{"invoice_id":"inv-1","amount":100,"method":"card"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["id"] != "pay-1" || got["status"] != "completed" {
			t.Fatalf("unexpected body: %v", got)
		}
	})

	t.Run("overpayment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		uc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(entities.Payment{}, usecase.ErrOverpayment)

		r := gin.New()
		r.POST("/v1/payments", h.ApplyPayment)

		body := `{"invoice_id":"inv-1","amount":500,"method":"card"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("concurrent payment returns conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		uc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(entities.Payment{}, usecase.ErrPaymentRace)

		r := gin.New()
		r.POST("/v1/payments", h.ApplyPayment)

		body := `{"invoice_id":"inv-1","amount":100,"method":"card"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_RefundPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		uc.EXPECT().Refund(gomock.Any(), "pay-1", "duplicate charge").Return(entities.Payment{
			ID:     "pay-1",
			Status: entities.PaymentStatusRefunded,
		}, nil)

		r := gin.New()
		r.POST("/v1/payments/:id/refund", h.RefundPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/refund", bytes.NewBufferString(`{"reason":"duplicate charge"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("not refundable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		uc.EXPECT().Refund(gomock.Any(), "pay-1", "again").
			Return(entities.Payment{}, usecase.ErrPaymentNotRefundable)

		r := gin.New()
		r.POST("/v1/payments/:id/refund", h.RefundPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/refund", bytes.NewBufferString(`{"reason":"again"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		uc.EXPECT().Refund(gomock.Any(), "pay-9", "oops").
			Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		r := gin.New()
		r.POST("/v1/payments/:id/refund", h.RefundPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-9/refund", bytes.NewBufferString(`{"reason":"oops"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
