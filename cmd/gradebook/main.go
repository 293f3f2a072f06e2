package main

import "github.com/opengrade/gradebook/internal/cli"

func main() {
	cli.Execute()
}
