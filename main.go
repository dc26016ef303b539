package main

import "github.com/clems4ever/mavtraits/cmd"

func main() {
	cmd.Execute()
}
