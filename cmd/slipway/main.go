package main

import (
	slipway "github.com/tidewater-dev/slipway/internal/apps/slipway/cmds"
	"github.com/tidewater-dev/slipway/internal/runtime"
)

func main() {
	var execErr error

	rt := runtime.New()
	defer rt.Finalize("slipway", "Type 'slipway help' to get help.", &execErr)

	execErr = slipway.Execute(rt)
}
