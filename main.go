package main

import "github.com/ByLCY/fesscard/cmd"

func main() {
	cmd.Execute()
}
