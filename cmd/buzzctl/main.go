package main

import "github.com/NotJanLive/trivia-pulse-points/internal/cli"

func main() {
	cli.Execute()
}
