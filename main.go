package main

import "manifest-resolver/cmd"

func main() {
	cmd.Execute()
}
