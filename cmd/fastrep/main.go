package main

import "github.com/hissain/fastrep/internal/cli"

func main() {
	cli.Execute()
}
