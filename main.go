package main

import "github.com/philipparndt/protedit/cmd"

func main() {
	cmd.Execute()
}
