// Package config loads and validates spanflow run configuration.
//
// A Config is decoded from YAML over Default(), so a file only names what it
// changes. Unknown keys are rejected. Validation runs struct tags through
// go-playground/validator and reports every failing field in one error.
//
// A Scenario is a Config plus the landscape it runs on: either inline rasters
// or a seeded synthetic landscape.
package config
