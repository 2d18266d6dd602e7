package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(err error) (int, map[string]any) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, zap.NewNop(), err, "create_failed")

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"overlap", &domain.OverlapError{Conflict: &domain.Conflict{ID: 4}}, http.StatusConflict, "overlap_conflict"},
		{"wrapped overlap", fmt.Errorf("tx: %w", &domain.OverlapError{}), http.StatusConflict, "overlap_conflict"},
		{"not found", httperr.ErrNotFound, http.StatusNotFound, "not_found"},
		{"business", httperr.ErrBusiness("invalid_status"), http.StatusBadRequest, "invalid_status"},
		{"storage disabled", httperr.ErrBusiness("media_storage_disabled"), http.StatusServiceUnavailable, "media_storage_disabled"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "create_failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(tc.err)
			if status != tc.status || body["error"] != tc.code {
				t.Fatalf("got %d %v", status, body)
			}
		})
	}
}

func TestRespondError_ConflictCarriesRecord(t *testing.T) {
	_, body := respond(&domain.OverlapError{Conflict: &domain.Conflict{ID: 4, Status: "CONFIRMED"}})

	conflict, ok := body["conflict"].(map[string]any)
	if !ok || conflict["id"] != float64(4) {
		t.Fatalf("unexpected conflict %v", body)
	}
}

func TestRespondError_InternalExposesOnlySQLState(t *testing.T) {
	status, body := respond(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", Message: "secret detail"}))

	if status != http.StatusInternalServerError || body["code"] != "23503" {
		t.Fatalf("got %d %v", status, body)
	}
	if _, leaked := body["message"]; leaked {
		t.Fatalf("internal errors must not leak messages: %v", body)
	}
}
