package main

import "github.com/gridflow/bmra/cmd/bmra/command"

func main() {
	command.Execute()
}
