// Package config loads configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Env holds the configuration values for a handler process.
type Env struct {
	Region        string `env:"AWS_REGION" envDefault:"us-east-1"`
	Table         string `env:"TABLE_NAME,required,notEmpty"`
	OutputBucket  string `env:"OUTPUT_BUCKET"`
	DevBypassAuth bool   `env:"DEV_BYPASS_AUTH"`
}

// MustLoad parses the environment and panics on a missing required variable.
// Called once at cold start, before lambda.Start.
func MustLoad() Env {
	var e Env
	if err := env.Parse(&e); err != nil {
		panic(fmt.Errorf("config: %w", err))
	}
	// envDefault only applies to unset variables; treat set-but-empty the
	// same way.
	if e.Region == "" {
		e.Region = "us-east-1"
	}
	return e
}

// MustOutputBucket returns the output bucket name, panicking when unset.
// Only the image handler requires it.
func (e Env) MustOutputBucket() string {
	if e.OutputBucket == "" {
		panic(fmt.Errorf("missing env OUTPUT_BUCKET"))
	}
	return e.OutputBucket
}
