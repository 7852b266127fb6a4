package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLogger_WritesClientIP(t *testing.T) {
	var buf bytes.Buffer
	sl := NewSecurityLoggerWriter(&buf)

	sl.LogSecurityEvent(WithClientIP(context.Background(), "10.0.0.7"), "LOGIN", "email=a@b.co")
	sl.LogSecurityEvent(context.Background(), "LOGOUT", "session=s")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "LOGIN - email=a@b.co - IP: 10.0.0.7")
	assert.Contains(t, string(lines[1]), "IP: unknown")
}

func TestSecurityLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "security.log")
	sl := NewSecurityLogger(path)
	sl.LogSecurityEvent(context.Background(), "REGISTER", "user_id=1")
	require.NoError(t, sl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "REGISTER - user_id=1")
}

func TestSecurityLogger_Nil(t *testing.T) {
	var sl *SecurityLogger
	sl.LogSecurityEvent(context.Background(), "LOGIN", "x")
	assert.NoError(t, sl.Close())
}
