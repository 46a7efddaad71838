package main

import "meld/cmd"

func main() {
	cmd.Execute()
}
