package entities

// SyncSettings is the effective configuration for a single sync run,
// resolved once per invocation so toggles changed mid-run never affect a
// run already in flight. Not persisted as a row; the settings store builds
// it from database overrides, environment and defaults.
type SyncSettings struct {
	Active bool

	WooBaseURL        string
	WooConsumerKey    string
	WooConsumerSecret string

	WPSiteURL     string
	WPUsername    string
	WPAppPassword string

	OpenAIAPIKey    string
	EnrichmentModel string

	SyncStock         bool
	SyncPrice         bool
	SyncDescription   bool
	SyncImages        bool
	EnrichmentEnabled bool
	OverrideExisting  bool

	BatchSize int
}

// StorefrontConfigured reports whether the mandatory storefront credentials
// are present.
func (s SyncSettings) StorefrontConfigured() bool {
	return s.WooBaseURL != "" && s.WooConsumerKey != "" && s.WooConsumerSecret != ""
}

// MediaConfigured reports whether WordPress media upload credentials are
// present. The site URL may be empty because it falls back to the
// storefront base URL.
func (s SyncSettings) MediaConfigured() bool {
	return s.WPUsername != "" && s.WPAppPassword != "" && s.MediaSiteURL() != ""
}

// EnrichmentConfigured reports whether the enrichment service can be called.
func (s SyncSettings) EnrichmentConfigured() bool {
	return s.OpenAIAPIKey != ""
}

// MediaSiteURL returns the WordPress site URL, falling back to the
// storefront base URL when no dedicated one is set.
func (s SyncSettings) MediaSiteURL() string {
	if s.WPSiteURL != "" {
		return s.WPSiteURL
	}
	return s.WooBaseURL
}
