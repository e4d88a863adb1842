// Package objects is a disk-backed object store with HMAC-signed, expiring
// access URLs, standing in for a hosted storage bucket. Signed URLs are
// recomputed on every read and never persisted.
package objects

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Store struct {
	dir     string
	baseURL string
	secret  []byte
	ttl     time.Duration
}

// NewStore creates the upload directory if needed. baseURL is the public
// address the signed URLs point back at.
func NewStore(dir, baseURL, secret string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
		ttl:     ttl,
	}, nil
}

// Save stores the uploaded file under <ownerID>/<unix-ms>.<ext> and returns
// that path.
func (s *Store) Save(ownerID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	objectPath := fmt.Sprintf("%s/%d%s", ownerID, time.Now().UnixMilli(), ext)

	full, err := s.resolve(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", err
	}
	return objectPath, nil
}

// Open returns the stored object for reading.
func (s *Store) Open(objectPath string) (*os.File, error) {
	full, err := s.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// resolve maps an object path onto the upload dir, rejecting traversal.
func (s *Store) resolve(objectPath string) (string, error) {
	clean := path.Clean("/" + objectPath) // collapses any ".." segments
	full := filepath.Join(s.dir, filepath.FromSlash(clean))
	if !strings.HasPrefix(full, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid object path: %s", objectPath)
	}
	return full, nil
}

// SignedURL returns a time-limited URL granting read access to the object.
func (s *Store) SignedURL(objectPath string) string {
	expires := time.Now().Add(s.ttl).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", s.sign(objectPath, expires))
	return fmt.Sprintf("%s/files/%s?%s", s.baseURL, objectPath, q.Encode())
}

// Verify checks the signature and expiry of a signed URL's parameters.
func (s *Store) Verify(objectPath string, expires int64, sig string) bool {
	if time.Now().Unix() > expires {
		return false
	}
	expected := s.sign(objectPath, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *Store) sign(objectPath string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", objectPath, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
