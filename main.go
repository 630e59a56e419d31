package main

import "github.com/Mohsinsiddi/abi-test/cmd"

func main() {
	cmd.Execute()
}
