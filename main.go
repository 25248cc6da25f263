package main

import "github.com/alfredpatchclaw/insight-dashboard/cmd"

func main() {
	cmd.Execute()
}
