package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-hub/app/domain"
	"session-hub/app/utils/logger"
)

type fakeTokenClient struct {
	verifyErr   error
	refreshTok  string
	refreshErr  error
	verifyCalls int
}

func (f *fakeTokenClient) VerifyAccessToken(ctx context.Context, accessToken string) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeTokenClient) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	return f.refreshTok, f.refreshErr
}

func newTestGateway(t *testing.T, client GoogleTokenClient) *TokenGateway {
	t.Helper()

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	return NewTokenGateway(client, testLogger)
}

func TestTokenGateway_Verify(t *testing.T) {
	tests := []struct {
		name      string
		verifyErr error
		want      bool
	}{
		{name: "valid token", verifyErr: nil, want: true},
		{name: "invalid token", verifyErr: errors.New("token info returned status 400"), want: false},
		{name: "endpoint unreachable", verifyErr: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeTokenClient{verifyErr: tt.verifyErr}
			g := newTestGateway(t, client)

			got := g.Verify(context.Background(), "tok")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, client.verifyCalls)
		})
	}
}

func TestTokenGateway_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		g := newTestGateway(t, &fakeTokenClient{refreshTok: "new-token"})

		accessToken, err := g.Refresh(context.Background(), "refresh-1")

		require.NoError(t, err)
		assert.Equal(t, "new-token", accessToken)
	})

	t.Run("failure maps to domain error", func(t *testing.T) {
		g := newTestGateway(t, &fakeTokenClient{refreshErr: errors.New("status 400")})

		_, err := g.Refresh(context.Background(), "refresh-1")

		assert.ErrorIs(t, err, domain.ErrTokenRefreshFailed)
	})
}
