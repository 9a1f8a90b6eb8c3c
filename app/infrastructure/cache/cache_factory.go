package cache

import (
	"strings"

	"campuskit.io/school-api-gateway/config/environment_variables"
)

// NewCacheService creates a cache service based on configuration
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	switch cacheType {
	case "", "redis":
		return NewRedisCacheService()
	case "none":
		return &NoOpCacheService{}
	default:
		// Fallback to Redis for unknown types
		return NewRedisCacheService()
	}
}
