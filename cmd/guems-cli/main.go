package main

import (
	"guems-backend/cmd/guems-cli/cmd"
)

func main() {
	cmd.Execute()
}
