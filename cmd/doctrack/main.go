package main

import "github.com/emrgen/doctrack/cmd"

func main() {
	cmd.Execute()
}
