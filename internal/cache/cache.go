package cache

type Cache interface {
	Get(key []byte) ([]byte, bool)
	Set(key, value []byte) bool
	Clear()
}
