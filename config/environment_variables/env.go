package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	DB_POSTGRESQL_WRITE_DSN string
	DB_POSTGRESQL_READ1_DSN string

	CACHE_TYPE     string
	CACHE_URL      string
	CACHE_PASSWORD string
	CACHE_DB       string

	JWT_SECRET         string
	ALLOWED_CORS_HOSTS []string

	LOG_LEVEL string

	// Durations are millisecond counts so the reflect loader stays simple.
	ATTENDANCE_CACHE_TTL_MS int
	ROSTER_CACHE_TTL_MS     int
	REALTIME_DEBOUNCE_MS    int

	ENABLE_AUTO_MIGRATE bool
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s\n", envKey)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Bool:
			if b, err := strconv.ParseBool(envValue); err == nil {
				v.Field(i).SetBool(b)
			}
		case reflect.Int:
			if n, err := strconv.Atoi(envValue); err == nil {
				v.Field(i).SetInt(int64(n))
			}
		case reflect.Slice:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
