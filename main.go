package main

import "github.com/jsphweid/musicbox/cmd"

func main() {
	cmd.Execute()
}
