package main

import (
	"github.com/nhamil/tilewe-go/internal/cli"
)

func main() {
	cli.Execute()
}
