// Package config loads, merges and validates postdesk configuration.
//
// Sources are applied in this order, later non-zero values winning:
//  1. an optional .env file (loaded into the process environment)
//  2. environment variables
//  3. command-line flags
//  4. a JSON config file named by CONFIG or -c/-config
//
// Defaults are filled in after merging and the result is validated.
// [GetStructuredConfig] serves the HTTP server, [GetClientConfig] the CLI.
package config
