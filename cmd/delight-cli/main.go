package main

import "github.com/MrE-Fog/grindery-delight-api/internal/cli"

func main() {
	cli.Execute()
}
