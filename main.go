package main

import "github.com/brogergvhs/docscrape/cmd"

func main() {
	cmd.Execute()
}
