package main

import "github.com/inkpose/inkpose/cmd"

func main() {
	cmd.Execute()
}
