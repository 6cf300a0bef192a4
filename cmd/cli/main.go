package main

import "bookshelf/cmd/cli/command"

func main() {
	command.Execute()
}
