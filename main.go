package main

import "github.com/omriBer/diet/cmd/leptin"

func main() {
	leptin.Execute()
}
