package main

import "github.com/sarchlab/devscore/cmd"

func main() {
	cmd.Execute()
}
