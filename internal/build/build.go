package build

import (
	"runtime/debug"
)

const Name = "flow-check"

// Version is the main module's version as stamped by the toolchain, or "(devel)" for local builds.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}
