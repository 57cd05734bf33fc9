package main

import "github.com/worldres/worldres/cmd/worldres/cmd"

func main() {
	cmd.Execute()
}
