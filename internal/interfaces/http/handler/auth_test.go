package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Login(t *testing.T) {
	env := setupRouter(t)

	tests := []struct {
		name     string
		body     map[string]string
		wantHTTP int
		wantCode float64
	}{
		{"成功", map[string]string{"email": "ravi@example.com", "password": "secret", "role": "patient"}, http.StatusOK, 0},
		{"密码错误", map[string]string{"email": "ravi@example.com", "password": "nope", "role": "patient"}, http.StatusUnauthorized, 110003},
		{"角色不匹配", map[string]string{"email": "ravi@example.com", "password": "secret", "role": "doctor"}, http.StatusUnauthorized, 110002},
		{"缺少字段", map[string]string{"email": "ravi@example.com"}, http.StatusBadRequest, 110001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/auth/login", tt.body)
			assert.Equal(t, tt.wantHTTP, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w)["code"])
		})
	}
}

func TestAuthHandler_LoginOmitsPassword(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "ravi@example.com", "password": "secret", "role": "patient",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	user, ok := data(t, w)["user"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "P001", user["id"])
}
