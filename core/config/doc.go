// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads .env files on first use (missing files are ignored) and
// uses the caarlos0/env library for parsing environment variables into struct
// fields:
//
//	type ServerConfig struct {
//		Addr         string `env:"HTTP_ADDR" envDefault:":8080"`
//		RelativePath string `env:"RELATIVE_PATH" envDefault:""`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Different types are cached independently. Reset clears the cache, which is
// mostly useful in tests.
package config
