package main

import "github.com/gitchart/gitchart/cmd"

func main() {
	cmd.Run()
}
