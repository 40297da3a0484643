package graphql

import (
	"context"
	"errors"
	"testing"

	"website_backend/internal/logger"
	"website_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicError_InternalCarriesRequestID(t *testing.T) {
	ctx := logger.WithRequestID(context.Background(), "req-42")

	var rerr *resolverError
	require.True(t, errors.As(publicError(ctx, errors.New("db is down")), &rerr))
	assert.Equal(t, "Internal server error", rerr.Error())
	assert.Equal(t, "req-42", rerr.Extensions()["request_id"])
	assert.Equal(t, string(apperrors.CodeInternalError), rerr.Extensions()["code"])
}

func TestPublicError_AppErrorKeepsMessage(t *testing.T) {
	var rerr *resolverError
	require.True(t, errors.As(publicError(context.Background(), apperrors.ErrNotLoggedIn), &rerr))
	assert.Equal(t, apperrors.MsgNotLoggedIn, rerr.Error())
	assert.NotContains(t, rerr.Extensions(), "request_id")
}
