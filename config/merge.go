package config

// Merge merges two configs, with non-zero values in override taking
// precedence. Neither argument is modified.
func Merge(base, override *Config) *Config {
	result := *base
	if override == nil {
		return &result
	}

	if override.Server.Address != "" {
		result.Server.Address = override.Server.Address
	}
	if override.Server.StaticDir != "" {
		result.Server.StaticDir = override.Server.StaticDir
	}
	if override.Server.EntryPage != "" {
		result.Server.EntryPage = override.Server.EntryPage
	}
	if override.Server.ValidateEdges != nil {
		v := *override.Server.ValidateEdges
		result.Server.ValidateEdges = &v
	}

	if override.Gemini.Model != "" {
		result.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		result.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.ProjectID != "" {
		result.Gemini.ProjectID = override.Gemini.ProjectID
	}
	if override.Gemini.Location != "" {
		result.Gemini.Location = override.Gemini.Location
	}
	if override.Gemini.BaseURL != "" {
		result.Gemini.BaseURL = override.Gemini.BaseURL
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}
	return &result
}
