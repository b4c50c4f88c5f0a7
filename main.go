package main

import "github.com/sajjad-MoBe/slotstore/cmd"

func main() {
	cmd.ExecuteServer()
}
