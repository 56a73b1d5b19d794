// Package config loads application settings from the environment.
//
// Structs are described with github.com/caarlos0/env/v11 field tags and
// optional .env files are read through github.com/joho/godotenv. Every
// configuration type is parsed once and cached for the life of the process:
//
//	if err := config.LoadEnv(".env.local"); err != nil {
//		log.Fatal(err)
//	}
//
//	var cfg csrf.Config
//	config.MustLoad(&cfg)
//
// Use Reload after changing the environment at runtime and ResetCache
// between tests.
package config
