// Package services implements the driving port interfaces.
// EnrichmentService runs the content enrichment pipeline over a
// ContentStore and a Generator; SettingsService resolves configuration
// from the environment, the config file and defaults.
package services
