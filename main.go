package main

import "github.com/silt-vcs/silt/cmd"

func main() {
	cmd.Execute()
}
