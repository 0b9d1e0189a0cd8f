package version

// Version is the API version, set at build time via ldflags.
// Example: go build -ldflags "-X github.com/larlarbooks/larlar/pkg/version.Version=1.0.0".
var Version = "dev"
