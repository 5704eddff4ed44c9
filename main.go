package main

import "github.com/theirongolddev/aliasim/cmd"

func main() {
	cmd.Execute()
}
