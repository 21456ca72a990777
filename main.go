package main

import "github.com/minilingo/anuvad/cmd"

func main() {
	cmd.Execute()
}
