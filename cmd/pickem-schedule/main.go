package main

import "github.com/pfrederiksen/pickem-schedule/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
