package cache

import "strings"

const (
	GlobalKeyPrefix = "studybuddy"
)

// Services and object types used in cache keys.
const (
	ServiceProgress = "progress"
	ObjectStreak    = "streak"
	ObjectHistory   = "history"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// StreakKey is the hash holding the process-wide study streak.
func StreakKey() string {
	return GenerateCacheKey(ServiceProgress, ObjectStreak, "global")
}

// HistoryKey caches one feedback history listing. An empty subject means all subjects.
func HistoryKey(subject string) string {
	id := strings.ToLower(strings.TrimSpace(subject))
	if id == "" {
		id = "all"
	}
	return GenerateCacheKey(ServiceProgress, ObjectHistory, id)
}
