// Package storage provides the durable key-value store backing player
// progression data: collection counters, gold, skin flags, and the daily
// quest / achievement save blobs.
package storage

import "context"

// Store is the persistence contract. Keys form a flat namespace; integer
// values default to 0 and string values to "" for unseen keys.
type Store interface {
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key with the given prefix. Used by the
	// daily reset to clear the DailyFood_ scope in one pass.
	DeletePrefix(ctx context.Context, prefix string) error
	DeleteAll(ctx context.Context) error
	Close() error
}
