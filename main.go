package main

import "bytemomo/dredge/cmd"

func main() {
	cmd.Execute()
}
