package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"opportunityrisks/internal/services"
)

func setupValueHelpRouter(handler *ValueHelpHandler) *gin.Engine {
	r := gin.New()
	r.GET("/value-help", handler.GetValueHelpNames)
	r.GET("/value-help/:name", handler.GetValueHelp)
	return r
}

func TestValueHelpHandler_GetValueHelp(t *testing.T) {
	r := setupValueHelpRouter(NewValueHelpHandler(services.NewValueHelpService()))

	tests := []struct {
		name      string
		path      string
		wantFirst string
	}{
		{"impact", "/value-help/impact-levels", "High Impact"},
		{"probability", "/value-help/probability-levels", "High Probability"},
		{"status", "/value-help/status-types", "Open"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, "GET", tt.path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			values := parseJSON(t, rec)["values"].([]interface{})
			if len(values) != 3 {
				t.Fatalf("expected 3 values, got %d", len(values))
			}
			if first := values[0].(map[string]interface{}); first["text"] != tt.wantFirst {
				t.Errorf("expected %q first, got %v", tt.wantFirst, first["text"])
			}
		})
	}

	t.Run("unknown list is 404", func(t *testing.T) {
		rec := doRequest(r, "GET", "/value-help/colours", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOT_FOUND")
	})

	t.Run("lists names", func(t *testing.T) {
		rec := doRequest(r, "GET", "/value-help", "")
		names := parseJSON(t, rec)["lists"].([]interface{})
		if len(names) != 3 || names[0] != "impact-levels" {
			t.Errorf("unexpected names %v", names)
		}
	})
}
