package main

import (
	"github.com/N3mes1s/claude-teleport-analyzer/cmd/claude-teleport-analyzer/commands"
)

func main() {
	commands.Execute()
}
