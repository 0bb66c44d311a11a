package main

import "github.com/cress-bdd/cress/cmd"

func main() {
	cmd.Execute()
}
