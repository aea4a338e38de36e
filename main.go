// Package main is the entry point for the bingolink-cli application.
package main

import (
	"github.com/codingforme/bingolink-cli/cmd"
	"github.com/codingforme/bingolink-cli/config"
	"github.com/codingforme/bingolink-cli/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
