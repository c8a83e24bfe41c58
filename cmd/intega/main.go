package main

import (
	"github.com/intega-app/intega/internal/cli"
)

func main() {
	cli.Execute()
}
