package dto

type Filter struct {
	Provider string `query:"provider"`
	Limit    int    `query:"limit"`
}

type Updated struct {
	Updated int `json:"updated"`
}

type Health struct {
	Ok        bool     `json:"ok"`
	Providers []string `json:"providers"`
}

type Error struct {
	Error              string   `json:"error"`
	SupportedProviders []string `json:"supportedProviders,omitempty"`
}
