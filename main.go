/*
	Copyright 2024 FSR League
*/

package main

import "github.com/fsrleague/standings-manager-go/cmd"

func main() {
	cmd.Execute()
}
