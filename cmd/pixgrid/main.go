package main

import (
	"github.com/devnullvoid/pixgrid/internal/cli"
)

func main() {
	cli.Execute()
}
