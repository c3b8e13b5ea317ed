package main

import "eposter/internal/cli"

func main() {
	cli.Execute()
}
