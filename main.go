package main

import (
	"github.com/quickplay-cli/quickplay/cmd"
	"github.com/quickplay-cli/quickplay/config"
	"github.com/quickplay-cli/quickplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
