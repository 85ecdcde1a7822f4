package main

import (
	"os"

	pilotcmder "github.com/papercomputeco/researchpilot/cmd/pilot"
)

func main() {
	cmd := pilotcmder.NewPilotCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
