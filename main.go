package main

import "github.com/mtxtkit/mtxt/cmd"

func main() {
	cmd.Execute()
}
