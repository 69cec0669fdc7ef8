package main

import "github.com/notargets/ensightfaces/cmd"

func main() {
	cmd.Execute()
}
