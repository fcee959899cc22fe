package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./woosync.db"

	// DefaultEnrichmentModel is the chat model used for product enrichment
	// when none is configured.
	DefaultEnrichmentModel = "gpt-3.5-turbo"

	// DefaultBatchSize is the number of products pushed per batch
	DefaultBatchSize = 5
)
