package wareki

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/wareki/pkg/wareki.Version=...".
var Version = "0.1.0"
