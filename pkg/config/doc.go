// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration structs declare their variables through `env` tags:
//
//	type Postgres struct {
//		URL string `env:"DATABASE_URL,required"`
//	}
//
//	var cfg Postgres
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// A .env file in the working directory is loaded once per process before the
// first parse; a missing file is not an error. MustLoad panics on failure and
// is meant for configuration the process cannot start without.
package config
