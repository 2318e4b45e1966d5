package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mediverse/backend/internal/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	creds *account.Credentials
	err   error
}

func (s staticSource) Credentials() (*account.Credentials, error) {
	return s.creds, s.err
}

func TestService_Login(t *testing.T) {
	svc := NewService(staticSource{creds: &account.Credentials{Users: []account.User{
		{ID: "P001", Name: "John Doe", Email: "john@example.com", Password: "patient123", Role: account.RolePatient},
	}}})
	ctx := context.Background()

	tests := []struct {
		name    string
		dto     LoginDTO
		wantErr error
	}{
		{"success", LoginDTO{Email: "john@example.com", Password: "patient123", Role: "patient"}, nil},
		{"wrong password", LoginDTO{Email: "john@example.com", Password: "nope", Role: "patient"}, account.ErrWrongPassword},
		{"wrong role", LoginDTO{Email: "john@example.com", Password: "patient123", Role: "doctor"}, account.ErrUnknownAccount},
		{"unknown email", LoginDTO{Email: "jane@example.com", Password: "patient123", Role: "patient"}, account.ErrUnknownAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, &tt.dto)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, "P001", result.User.ID)
		})
	}
}

func TestService_Login_SourceFailure(t *testing.T) {
	svc := NewService(staticSource{err: errors.New("credentials file not found")})

	_, err := svc.Login(context.Background(), &LoginDTO{Email: "a", Password: "b", Role: "patient"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
