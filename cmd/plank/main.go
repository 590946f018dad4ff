package main

import "plank-cli/internal/cli"

func main() {
	cli.Execute()
}
