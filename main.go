package main

import "gitoutofhours/cmd"

func main() {
	cmd.Execute()
}
