package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "42")
	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "42", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestTaskLogFailureIsError(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)

	TaskLog("get_users_count", "abc", 0, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestGetRequestID_Empty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Equal(t, "req-2", GetRequestID(WithRequestID(context.Background(), "req-2")))
}
