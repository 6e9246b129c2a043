package main

import "github.com/streakd/streakd/cmd"

func main() {
	cmd.Execute()
}
