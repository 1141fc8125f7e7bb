// Package config parses process environment variables into typed structs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from the process environment. Fields are mapped with `env`
// tags and fall back to `envDefault` values when the variable is unset.
//
//	type Config struct {
//	    HTTPPort int    `env:"HTTP_PORT" envDefault:"3000"`
//	    MongoURI string `env:"MONGO_URI"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
