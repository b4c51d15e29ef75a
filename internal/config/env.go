package config

import (
	"os"
	"reflect"
)

// loadFromEnv walks the config struct and overrides fields that carry an
// env tag with the matching environment variable, when set. All config
// fields are strings, so no further conversion is needed.
func loadFromEnv(s interface{}) {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.Struct {
			loadFromEnv(field.Addr().Interface())
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue, exists := os.LookupEnv(envTag)
		if !exists {
			continue
		}

		if field.CanSet() && field.Kind() == reflect.String {
			field.SetString(envValue)
		}
	}
}
