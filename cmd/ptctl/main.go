package main

import "github.com/yoBruxo/PTbotKND/internal/cli"

func main() {
	cli.Execute()
}
