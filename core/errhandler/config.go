package errhandler

// Config holds the environment-driven settings of the error handlers.
type Config struct {
	// RelativePath is the base path the forum is served under, e.g. "/forum".
	RelativePath string `env:"RELATIVE_PATH" envDefault:""`
	SiteTitle    string `env:"SITE_TITLE" envDefault:"Forum"`
}
