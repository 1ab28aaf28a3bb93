package main

import "github.com/mcoot/progressjournal/internal/cli"

func main() {
	cli.Execute()
}
