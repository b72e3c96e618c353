package main

type SyncConfig struct {
	// FetchTimeoutSeconds bounds one login+download round trip against
	// the portal. Defaults to 300.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`
}

type Config struct {
	Database      string     `json:"database"`
	PortalBaseUrl string     `json:"portal_base_url"`
	Port          int        `json:"port"`
	Sync          SyncConfig `json:"sync"`
}
