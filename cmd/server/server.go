package main

import (
	"context"

	"github.com/mileusna/crontab"

	"campuskit.io/school-api-gateway/app/domain/cron"
	"campuskit.io/school-api-gateway/app/domain/healthcheck"
	"campuskit.io/school-api-gateway/app/interfaces/http"
	"campuskit.io/school-api-gateway/config/environment_variables"
)

type Application struct {
	HttpServer         *http.HttpServer
	CronService        *cron.CronService
	HealthcheckService *healthcheck.HealthcheckCrontabService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	ctab := crontab.New()
	crontabContext := context.Background()
	application.HealthcheckService.Start(crontabContext, ctab)
	application.CronService.Start(crontabContext, ctab)
	application.Start()
}
