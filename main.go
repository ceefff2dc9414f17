package main

import "bizsite/cmd"

func main() {
	cmd.Execute()
}
