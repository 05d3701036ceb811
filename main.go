package main

import "github.com/deploymenttheory/go-winkey/cmd"

func main() {
	cmd.Execute()
}
