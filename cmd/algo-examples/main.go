package main

import "github.com/algofoundry/asset-workflows-go/cmd/algo-examples/cmd"

func main() {
	cmd.Execute()
}
