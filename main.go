package main

import (
	"github.com/maxgio92/kprof/pkg/cmd"
)

func main() {
	cmd.Execute()
}
