package main

import "github.com/pfrederiksen/bref-batting/internal/cli"

func main() {
	cli.Execute()
}
