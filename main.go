package main

import "github.com/kelsall/chatline/cmd"

func main() {
	cmd.Execute()
}
