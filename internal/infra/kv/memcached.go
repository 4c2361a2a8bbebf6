package kv

import (
	"context"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
)

type Memcached struct {
	mc *memcache.Client
}

func NewMemcached(server string) *Memcached {
	return &Memcached{mc: memcache.New(server)}
}

func (m *Memcached) Get(ctx context.Context, key string) (string, error) {
	item, err := m.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

func (m *Memcached) Set(ctx context.Context, key, value string) error {
	return m.mc.Set(&memcache.Item{Key: key, Value: []byte(value)})
}

func (m *Memcached) Delete(ctx context.Context, key string) error {
	err := m.mc.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}
