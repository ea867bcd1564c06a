package main

import "github.com/imgx-dev/imgx/cmd/imgx/cmd"

func main() {
	cmd.Execute()
}
