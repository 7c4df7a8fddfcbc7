package templates

// Provider serves edit list templates by name.
type Provider interface {
	// Get returns the named template, or the default one for unknown names.
	Get(name string) string
	// Load reads every *.txt file in dir, keyed by file stem.
	Load(dir string) error
	// Reload loads the directory the provider was created with.
	Reload() error
	// List returns the known template names, sorted.
	List() []string
	// Validate reports whether content has the {scenes} placeholder.
	Validate(content string) bool
}
