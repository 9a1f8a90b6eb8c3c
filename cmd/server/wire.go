//go:build wireinject

package main

import (
	"github.com/google/wire"

	"campuskit.io/school-api-gateway/app/domain"
	"campuskit.io/school-api-gateway/app/domain/cron"
	"campuskit.io/school-api-gateway/app/domain/healthcheck"
	"campuskit.io/school-api-gateway/app/infrastructure"
	"campuskit.io/school-api-gateway/app/infrastructure/database"
	"campuskit.io/school-api-gateway/app/infrastructure/database/repository"
	"campuskit.io/school-api-gateway/app/interfaces/http"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		infrastructure.InfrastructureProvider,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		cron.NewService,
		healthcheck.NewService,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
