package main

import (
	"fmt"

	"github.com/silinternational/ecs-canary-deploy/cli/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	fmt.Printf("ecs-canary-deploy version %s\n\n", version)
	cmd.Version = version
	cmd.Commit = commit
	cmd.Date = date
	cmd.BuiltBy = builtBy
	cmd.Execute()
}
