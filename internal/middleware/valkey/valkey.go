// Package valkey is a valkey-backed implementation of cache storage, used
// when several instances should share one response cache.
package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	valkeygo "github.com/valkey-io/valkey-go"
)

var log = logrus.WithField("package", "valkey")

// Storage ...
type Storage struct {
	c valkeygo.Client
}

// NewStorage connects to valkey and verifies the connection with a ping.
func NewStorage(addr, password string) (*Storage, error) {
	c, err := valkeygo.NewClient(valkeygo.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		DisableCache:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.Do(ctx, c.B().Ping().Build()).Error(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	return &Storage{c: c}, nil
}

// Get returns the cached content or nil when absent or on error.
func (s *Storage) Get(ctx context.Context, key string) []byte {
	b, err := s.c.Do(ctx, s.c.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		return nil
	}

	return b
}

// Set stores content with the given ttl. Failures only cost a cache miss.
func (s *Storage) Set(ctx context.Context, key string, content []byte, ttl time.Duration) {
	cmd := s.c.B().Set().Key(key).Value(valkeygo.BinaryString(content)).Ex(ttl).Build()
	if err := s.c.Do(ctx, cmd).Error(); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to store cache entry")
	}
}

// Close ...
func (s *Storage) Close() {
	s.c.Close()
}
