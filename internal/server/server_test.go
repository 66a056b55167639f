package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/handlers"
)

func TestServerRoutesUnderAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{Environment: "test"}
	cfg.HTTP.Port = 8001
	srv := NewHTTPServer(cfg, zerolog.Nop(), handlers.NewHandlerSet(zerolog.Nop(), cfg, handlers.Services{}, nil, nil))

	cases := []struct {
		path   string
		status int
		detail string
	}{
		{"/api/", http.StatusOK, ""},
		{"/api/health", http.StatusOK, ""},
		{"/nowhere", http.StatusNotFound, "Not Found"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.detail == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["detail"] != tc.detail {
				t.Fatalf("expected detail %q, got %q", tc.detail, body["detail"])
			}
		})
	}
}
