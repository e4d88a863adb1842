package objects

import (
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), "http://localhost:8080", "signing-secret", ttl)
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen(t *testing.T) {
	s := newTestStore(t, time.Hour)

	path, err := s.Save("user-1", "photo.JPG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "user-1/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	f, err := s.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSignedURLVerifies(t *testing.T) {
	s := newTestStore(t, time.Hour)

	signed := s.SignedURL("user-1/123.jpg")
	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Path, "/files/user-1/123.jpg"))

	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	require.NoError(t, err)
	sig := u.Query().Get("sig")

	assert.True(t, s.Verify("user-1/123.jpg", expires, sig))
	assert.False(t, s.Verify("user-1/other.jpg", expires, sig))
	assert.False(t, s.Verify("user-1/123.jpg", expires, "tampered"))
}

func TestSignedURLExpires(t *testing.T) {
	s := newTestStore(t, -time.Minute)

	signed := s.SignedURL("user-1/123.jpg")
	u, err := url.Parse(signed)
	require.NoError(t, err)
	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	require.NoError(t, err)

	assert.False(t, s.Verify("user-1/123.jpg", expires, u.Query().Get("sig")))
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t, time.Hour)

	_, err := s.Open("../outside.txt")
	assert.Error(t, err)
}
