package main

import "github.com/surveylens/surveylens-cli/cmd"

func main() {
	cmd.Execute()
}
