package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/pilot/internal/dagger"
)

// Build returns a directory with the pilot binary for each supported
// platform, laid out as <os>/<arch>/pilot. Builds run natively per platform
// because sqlite-vec needs cgo.
func (p *Pilot) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	outputs := dag.Directory()

	for _, platform := range []dagger.Platform{"linux/amd64", "linux/arm64"} {
		path := string(platform) + "/"

		build := p.goContainer(platform).
			WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", path, "./cli/pilot"})

		outputs = outputs.WithDirectory(path, build.Directory(path))
	}

	return outputs
}

// BuildRelease compiles versioned binaries with embedded version info
func (p *Pilot) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	const pkg = "github.com/papercomputeco/researchpilot/pkg/utils"

	ldflags := []string{
		"-s",
		"-w",
		fmt.Sprintf("-X '%s.Version=%s'", pkg, version),
		fmt.Sprintf("-X '%s.Sha=%s'", pkg, commit),
		fmt.Sprintf("-X '%s.Buildtime=%s'", pkg, time.Now().UTC().Format(time.RFC3339)),
	}

	return p.Build(ctx, strings.Join(ldflags, " "))
}
