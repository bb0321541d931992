package main

import "langusta/cmd"

func main() {
	cmd.Execute()
}
