package main

import "font-helper/cmd"

func main() {
	cmd.Execute()
}
