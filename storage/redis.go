// Package storage opens the redis translation cache behind the
// storages.Storage interface.
package storage

import (
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/reddec/storages"
	"github.com/reddec/storages/redistorage"
)

// Dial connects to a redis:// URL and keeps every translation as a field
// of the hash named by namespace.
func Dial(url string, namespace string) (storages.Storage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(err, "parse redis url %q", url)
	}
	client := redis.NewClient(opts)
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return redistorage.NewClient(namespace, client), nil
}
