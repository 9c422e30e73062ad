package main

import "enum-sync/cmd"

func main() {
	cmd.Execute()
}
