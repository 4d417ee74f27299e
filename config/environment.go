package config

import "strconv"

// Environment variables read by FromEnv.
const (
	EnvAddress       = "ARCHSKETCH_ADDR"
	EnvStaticDir     = "ARCHSKETCH_STATIC_DIR"
	EnvEntryPage     = "ARCHSKETCH_ENTRY_PAGE"
	EnvValidateEdges = "ARCHSKETCH_VALIDATE_EDGES"
	EnvModel         = "ARCHSKETCH_MODEL"
	EnvLogLevel      = "ARCHSKETCH_LOG_LEVEL"
	EnvLogFormat     = "ARCHSKETCH_LOG_FORMAT"
	EnvProject       = "GOOGLE_CLOUD_PROJECT"
	EnvLocation      = "GOOGLE_CLOUD_LOCATION"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv returns a partial Config holding only the values set in the
// environment. API keys are not read here; the gemini package reads them.
func FromEnv(lookup LookupFunc) *Config {
	get := func(key string) string {
		value, _ := lookup(key)
		return value
	}
	cfg := &Config{
		Server: Server{
			Address:   get(EnvAddress),
			StaticDir: get(EnvStaticDir),
			EntryPage: get(EnvEntryPage),
		},
		Gemini: Gemini{
			Model:     get(EnvModel),
			ProjectID: get(EnvProject),
			Location:  get(EnvLocation),
		},
		Logging: Logging{
			Level:  get(EnvLogLevel),
			Format: get(EnvLogFormat),
		},
	}
	if value := get(EnvValidateEdges); value != "" {
		if enabled, err := strconv.ParseBool(value); err == nil {
			cfg.Server.ValidateEdges = &enabled
		}
	}
	return cfg
}
