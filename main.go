package main

import "github.com/tranvictor/payroll/cmd"

func main() {
	cmd.Execute()
}
