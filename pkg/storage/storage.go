// Package storage stores covers, PDFs and chapter bundles in an object store
// addressed by deterministic keys.
package storage

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/larlarbooks/larlar/pkg/config"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/pkg/errors"
)

const (
	// CacheControl is sent with every upload. Keys are overwritten in place,
	// so clients that need fresh content must bust the cache themselves.
	CacheControl = "public, max-age=31536000, immutable"

	DefaultPresignExpiry = time.Hour
)

var ErrNotFound = errors.New("object not found")

type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

type Store interface {
	// Put writes body under key and returns its public URL.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	// PutJSON marshals v and writes it under key as application/json.
	PutJSON(ctx context.Context, key string, v interface{}) (string, error)
	// Get returns ErrNotFound when the key doesn't exist. The caller must
	// close the returned body.
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// IsAbsoluteURL reports whether a stored path is already a full http(s) URL.
// Older rows stored URLs instead of keys.
func IsAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func publicURL(base, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if IsAbsoluteURL(key) {
		return key
	}
	key = strings.TrimLeft(key, "/")
	if base == "" {
		return "/" + key
	}
	return strings.TrimRight(base, "/") + "/" + key
}

func storageError(op string, err error) error {
	return errors.Wrap(errcodes.StorageError(op), err.Error())
}

// New returns an R2 store when R2 is configured and an in-process store
// otherwise.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.R2Enabled() {
		r2, err := NewR2(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r2, nil
	}
	return NewMemory(cfg.R2PublicURL), nil
}
