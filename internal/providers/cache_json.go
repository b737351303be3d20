package providers

import json "github.com/goccy/go-json"

// GetJSON decodes the cached value of key into a T. An undecodable entry is
// reported as a miss.
func GetJSON[T any](cache CacheProviderInterface, key string) (T, bool) {
	var out T
	data, ok := cache.Get(key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

func SetJSON(cache CacheProviderInterface, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	cache.Set(key, data)
}
