package main

import "golist/cmd"

func main() {
	cmd.Execute()
}
