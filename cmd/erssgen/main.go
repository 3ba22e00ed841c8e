package main

import "github.com/strataworks/erssgen/internal/cli"

func main() {
	cli.Execute()
}
