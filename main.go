package main

import (
	"github.com/remold-dev/remold/cmd"
	_ "github.com/remold-dev/remold/rules"
)

var version = "v0.3.1"

func main() {
	cmd.Execute(version)
}
