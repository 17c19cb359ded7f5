package main

import "readtax/cmd"

func main() {
	cmd.Execute()
}
