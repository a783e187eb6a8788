package main

import "github.com/drei/progrich/internal/cli"

func main() {
	cli.Execute()
}
