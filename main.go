package main

import "github.com/brogergvhs/scriptbox/cmd"

func main() {
	cmd.Execute()
}
