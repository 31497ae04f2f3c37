package version

// Version is the release version stamped into the binary. Overridden at build
// time via -ldflags "-X github.com/lospro7/snapshot-s3-util/src/version.Version=...".
var Version = "dev"
