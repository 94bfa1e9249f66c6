package main

import "github.com/edubridge/edubridge/cmd"

func main() {
	cmd.Execute()
}
