package config

// Config is the archsketch service configuration.
type Config struct {
	Server  Server  `yaml:"Server,omitempty" json:"Server,omitempty"`
	Gemini  Gemini  `yaml:"Gemini,omitempty" json:"Gemini,omitempty"`
	Logging Logging `yaml:"Logging,omitempty" json:"Logging,omitempty"`
}

// Server configures the HTTP listener and static assets.
type Server struct {
	Address string `yaml:"Address,omitempty" json:"Address,omitempty"`
	// StaticDir serves assets from disk instead of the embedded set.
	StaticDir string `yaml:"StaticDir,omitempty" json:"StaticDir,omitempty"`
	// EntryPage is the file served for "/".
	EntryPage string `yaml:"EntryPage,omitempty" json:"EntryPage,omitempty"`
	// ValidateEdges rejects diagrams with duplicate node ids or edges that
	// point at unknown nodes.
	ValidateEdges *bool `yaml:"ValidateEdges,omitempty" json:"ValidateEdges,omitempty"`
}

// Gemini configures the generative AI client. Credentials normally come
// from GEMINI_API_KEY or GOOGLE_API_KEY.
type Gemini struct {
	Model     string `yaml:"Model,omitempty" json:"Model,omitempty"`
	APIKey    string `yaml:"APIKey,omitempty" json:"APIKey,omitempty"`
	ProjectID string `yaml:"ProjectID,omitempty" json:"ProjectID,omitempty"`
	Location  string `yaml:"Location,omitempty" json:"Location,omitempty"`
	BaseURL   string `yaml:"BaseURL,omitempty" json:"BaseURL,omitempty"`
}

// Logging configures the process logger.
type Logging struct {
	Level  string `yaml:"Level,omitempty" json:"Level,omitempty"`
	Format string `yaml:"Format,omitempty" json:"Format,omitempty"`
}

// ValidateEdgesEnabled reports whether edge validation is on.
func (s Server) ValidateEdgesEnabled() bool {
	return s.ValidateEdges != nil && *s.ValidateEdges
}
