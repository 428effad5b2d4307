package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticketing_recurrente/internal/domain/entities"
	mock_interfaces "ticketing_recurrente/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newSettingsRouter(repo *mock_interfaces.MockISettingsRepository) *gin.Engine {
	h := NewSettingsHandler(repo)
	r := gin.New()
	r.PUT("/v1/organizers/:organizer/recurrente/settings", h.PutSettings)
	r.GET("/v1/organizers/:organizer/recurrente/settings", h.GetSettings)
	r.PUT("/v1/organizers/:organizer/events/:event/recurrente/settings", h.PutSettings)
	r.GET("/v1/organizers/:organizer/events/:event/recurrente/settings", h.GetSettings)
	return r
}

func TestSettingsHandler_PutSettings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("stores event-level settings from the path tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)

		repo.EXPECT().Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s entities.EventSettings) (entities.EventSettings, error) {
				if s.Organizer != "acme" || s.Event != "conf" {
					t.Fatalf("expected tenant from path, got %s/%s", s.Organizer, s.Event)
				}
				if s.APISecret != "sk_test_1" || !s.TestMode {
					t.Fatalf("payload not mapped: %+v", s)
				}
				return s, nil
			})

		body := `{"api_key":"pk_test_1","api_secret":"sk_test_1","webhook_secret":"whsec_abcdef","test_mode":true}`
		req := httptest.NewRequest(http.MethodPut, "/v1/organizers/acme/events/conf/recurrente/settings", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newSettingsRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if got["api_secret"] == "sk_test_1" || got["webhook_secret"] == "whsec_abcdef" {
			t.Fatalf("secrets must be masked in responses: %v", got)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)

		req := httptest.NewRequest(http.MethodPut, "/v1/organizers/acme/recurrente/settings", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newSettingsRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("organizer scope when no event in path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)

		repo.EXPECT().GetOrganizerSettings(gomock.Any(), "acme").
			Return(entities.EventSettings{Organizer: "acme", APIKey: "pk_test_1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/organizers/acme/recurrente/settings", nil)
		w := httptest.NewRecorder()
		newSettingsRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)

		repo.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(entities.EventSettings{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/organizers/acme/events/conf/recurrente/settings", nil)
		w := httptest.NewRecorder()
		newSettingsRouter(repo).ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
