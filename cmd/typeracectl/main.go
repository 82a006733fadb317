package main

import (
	"github.com/fastfingers/typerace/internal/cli"
)

func main() {
	cli.Execute()
}
