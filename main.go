package main

import "github.com/Manu343726/opscrape/cmd"

func main() {
	cmd.Execute()
}
