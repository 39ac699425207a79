package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"autoshop/internal/adapter/http/handlers/mocks"
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// A save that loses its optimistic-concurrency race is retryable and must
// surface as 409, not as a server fault.
func TestLostVersionRaceReturnsConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assertConflict := func(t *testing.T, w *httptest.ResponseRecorder) {
		t.Helper()
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["code"] != "VERSION_CONFLICT" {
			t.Fatalf("unexpected error code: %v", got)
		}
	}

	t.Run("estimate update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().Update(gomock.Any(), "est-1", gomock.Any()).
			Return(entities.Estimate{}, interfaces.ErrVersionConflict)

		r := gin.New()
		r.PATCH("/v1/estimates/:id", h.UpdateEstimate)

		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1", bytes.NewBufferString(`{"notes":"n"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertConflict(t, w)
	})

	t.Run("work order status change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWorkOrderUseCase(ctrl)
		h := NewWorkOrderHandler(uc)

		uc.EXPECT().ChangeStatus(gomock.Any(), "wo-1", entities.WorkOrderStatusInProgress).
			Return(entities.WorkOrder{}, interfaces.ErrVersionConflict)

		r := gin.New()
		r.PATCH("/v1/work-orders/:id/status", h.ChangeStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/work-orders/wo-1/status", bytes.NewBufferString(`{"status":"in_progress"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertConflict(t, w)
	})

	t.Run("invoice update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		uc.EXPECT().Update(gomock.Any(), "inv-1", gomock.Any()).
			Return(entities.Invoice{}, interfaces.ErrVersionConflict)

		r := gin.New()
		r.PATCH("/v1/invoices/:id", h.UpdateInvoice)

		req := httptest.NewRequest(http.MethodPatch, "/v1/invoices/inv-1", bytes.NewBufferString(`{"discount_amount":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertConflict(t, w)
	})

	t.Run("appointment update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		h := NewAppointmentHandler(uc)

		uc.EXPECT().Update(gomock.Any(), "app-1", gomock.Any()).
			Return(entities.Appointment{}, interfaces.ErrVersionConflict)

		r := gin.New()
		r.PATCH("/v1/appointments/:id", h.UpdateAppointment)

		req := httptest.NewRequest(http.MethodPatch, "/v1/appointments/app-1", bytes.NewBufferString(`{"notes":"n"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assertConflict(t, w)
	})
}
