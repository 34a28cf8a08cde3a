package main

import "github.com/SheaGuev/studykit/cmd"

func main() {
	cmd.Execute()
}
