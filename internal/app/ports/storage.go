package ports

// KVPort is the persistence collaborator: string keys, JSON values, synchronous
// reads and writes.
type KVPort interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Delete(key string) error
	Close() error
}
