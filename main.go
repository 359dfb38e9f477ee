package main

import (
	"github.com/estudia-app/estudia/cmd"
)

func main() {
	cmd.Execute()
}
