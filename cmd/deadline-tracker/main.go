package main

import "github.com/pfrederiksen/deadline-tracker/internal/cli"

func main() {
	cli.Execute()
}
