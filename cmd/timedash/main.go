package main

import "github.com/emiliopalmerini/timedash/internal/cli"

func main() {
	cli.Execute()
}
