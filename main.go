package main

import "github.com/Norgate-AV/jpack/cmd"

func main() {
	cmd.Execute()
}
