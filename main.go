package main

import "github.com/KaramelBytes/resultkit-cli/cmd"

func main() {
	cmd.Execute()
}
