package config

// Version is the trv binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/trv/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
