package main

import "github.com/GAKiknadze/swagger-to-docs/cmd"

func main() {
	cmd.Execute()
}
