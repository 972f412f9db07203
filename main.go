package main

import "github.com/bwx/bwx/cmd"

func main() {
	cmd.Execute()
}
