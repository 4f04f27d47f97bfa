package main

import "github.com/pders01/templatify/cmd"

func main() {
	cmd.Execute()
}
