package main

import "yyoom/internal/cli"

func main() {
	cli.Execute()
}
