package main

import "github.com/kbukum/fluxkit/internal/cli"

func main() {
	cli.Execute()
}
