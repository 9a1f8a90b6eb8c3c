package infrastructure

import (
	"github.com/google/wire"

	"campuskit.io/school-api-gateway/app/infrastructure/cache"
)

var InfrastructureProvider = wire.NewSet(
	cache.NewCacheService,
)
