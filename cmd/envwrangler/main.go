package main

import "github.com/envwrangler/envwrangler/cmd"

func main() {
	cmd.Execute()
}
