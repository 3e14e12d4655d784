package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "ratewise-test", Output: io.Discard})
}

func TestRequireRoleAllowsExactMatch(t *testing.T) {
	called := false
	handler := RequireRole(enums.RoleAdmin, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.RoleAdmin)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	handler := RequireRole(enums.RoleUser, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	// admins get no shortcut onto user routes
	for _, role := range []string{string(enums.RoleAdmin), string(enums.RoleStoreOwner), ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
		if role != "" {
			req = req.WithContext(WithRole(req.Context(), role))
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %q", role)

		var envelope types.ErrorEnvelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
		assert.Equal(t, "insufficient role", envelope.Error.Message)
	}
}
