package main

import "github.com/keytune/keytune/internal/cli"

func main() {
	cli.Execute()
}
