package types

// RepoFile is the repository definitions file (repos.yaml).
type RepoFile struct {
	Repos []RepoDefinition `yaml:"repos"`
}

// RepoDefinition describes one package repository whose metadata has been
// synced into the engine cache directory.
type RepoDefinition struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name,omitempty"`
	BaseURL string `yaml:"baseurl"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty"`
}

func (r RepoDefinition) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}
