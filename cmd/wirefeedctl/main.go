package main

import "github.com/wirefeed/wirefeed/cmd/wirefeedctl/commands"

func main() {
	commands.Execute()
}
