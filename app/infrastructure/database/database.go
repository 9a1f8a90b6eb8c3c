package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"campuskit.io/school-api-gateway/app/utils/logger"
	"campuskit.io/school-api-gateway/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

func NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(environment_variables.EnvironmentVariables.DB_POSTGRESQL_WRITE_DSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "0e3f7a2d-4f0a-4f6e-9a34-6a1f6f0f7b11").
			Fatalf("unable to connect to database: %v", err)
		return nil, err
	}

	if readDSN := environment_variables.EnvironmentVariables.DB_POSTGRESQL_READ1_DSN; readDSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(readDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "6d2b4c61-08a7-4a6f-9d6c-3c5bfa7f2a90").
				Fatalf("unable to setup read replica: %v", err)
			return nil, err
		}
	}

	if environment_variables.EnvironmentVariables.ENABLE_AUTO_MIGRATE {
		for _, model := range SchemaRegistry {
			if err := db.AutoMigrate(model); err != nil {
				logger.GetLogger().
					WithField("error_code", "4b1e9f02-57b3-4d54-8a0f-9be2a9c3d417").
					Fatalf("failed to auto migrate schema: %T, error: %v", model, err)
				return nil, err
			}
		}
	}

	DB = db
	return DB, nil
}
