package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

type memoryObject struct {
	body        []byte
	contentType string
}

// Memory is an in-process Store. It backs development servers without R2
// credentials and tests, which can make writes fail with FailPuts.
type Memory struct {
	mu        sync.RWMutex
	objects   map[string]memoryObject
	publicURL string
	putErr    error
}

func NewMemory(publicURL string) *Memory {
	return &Memory{
		objects:   map[string]memoryObject{},
		publicURL: publicURL,
	}
}

// FailPuts makes every following Put and PutJSON fail with err. Pass nil to
// restore normal behavior.
func (m *Memory) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

func (m *Memory) Put(_ context.Context, key string, body []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", storageError("upload "+key, m.putErr)
	}
	m.objects[key] = memoryObject{body: append([]byte(nil), body...), contentType: contentType}
	return publicURL(m.publicURL, key), nil
}

func (m *Memory) PutJSON(ctx context.Context, key string, v interface{}) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return m.Put(ctx, key, body, "application/json")
}

func (m *Memory) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:          io.NopCloser(bytes.NewReader(obj.body)),
		ContentType:   obj.contentType,
		ContentLength: int64(len(obj.body)),
	}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *Memory) PublicURL(key string) string {
	return publicURL(m.publicURL, key)
}

func (m *Memory) PresignedGetURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	expires := time.Now().Add(expiry).Unix()
	return fmt.Sprintf("%s?expires=%s", publicURL(m.publicURL, key), url.QueryEscape(fmt.Sprint(expires))), nil
}

// Keys lists the stored keys. Only meant for tests.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
