// Pilot CI
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
package main

import (
	"context"

	"dagger/pilot/internal/dagger"
)

// Pilot is the main module for the ResearchPilot CI pipeline
type Pilot struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Pilot CI module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".pilot", "build", "tmp"]
	source *dagger.Directory,
) *Pilot {
	return &Pilot{
		Source: source,
	}
}

// goContainer returns a Debian Bookworm-based Go container with gcc and CGO
// enabled (the sqlite vector store links sqlite-vec), and the project source
// mounted. An empty platform uses the engine's native one.
func (p *Pilot) goContainer(platform dagger.Platform) *dagger.Container {
	return dag.Container(dagger.ContainerOpts{Platform: platform}).
		From("golang:1.25-bookworm").
		WithExec([]string{"apt-get", "update"}).
		WithExec([]string{"apt-get", "install", "-y", "gcc", "libsqlite3-dev"}).
		WithEnvVariable("CGO_ENABLED", "1").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", p.Source)
}

// Test runs the unit tests via "go test"
func (p *Pilot) Test(ctx context.Context) (string, error) {
	return p.goContainer("").
		WithExec([]string{"go", "test", "-race", "./..."}).
		Stdout(ctx)
}
