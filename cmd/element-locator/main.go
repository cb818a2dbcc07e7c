package main

import cmd "github.com/rohmanhakim/element-locator/internal/cli"

func main() {
	cmd.Execute()
}
