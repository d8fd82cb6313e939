package main

import "github.com/klytics/olivar/cmd"

func main() {
	cmd.Execute()
}
