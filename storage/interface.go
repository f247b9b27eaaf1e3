package storage

import "context"

// KV - минимальное долговременное хранилище ключ/значение для флагов избранного.
// Отсутствие ключа и удаленный ключ неразличимы.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close()
}
