package main

import (
	"github.com/numaproj/eventbuilder/cmd/commands"
)

func main() {
	commands.Execute()
}
