package main

import "github.com/aheadley/packagetrack/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
