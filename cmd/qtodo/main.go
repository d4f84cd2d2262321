package main

import "github.com/sandeepkv93/quantumtodo/internal/cli"

func main() {
	cli.Execute()
}
