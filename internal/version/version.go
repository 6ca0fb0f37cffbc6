package version

// Overridden at build time via -ldflags.
var (
	AppName   = "Guild Steward"
	Version   = "dev"
	BuildDate = ""
)
