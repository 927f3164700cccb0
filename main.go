package main

import "github.com/theirongolddev/routine/cmd"

func main() {
	cmd.Execute()
}
