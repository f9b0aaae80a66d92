package redis

// keyspace namespaces keys so the cache and the idempotency store can
// share one Redis database.
type keyspace string

const (
	cacheKeyspace       keyspace = "cache:"
	idempotencyKeyspace keyspace = "idempotency:"
)

func (k keyspace) key(name string) string {
	return string(k) + name
}
