package main

import "github.com/heatworks/loadbalancer-heat-templates/cmd"

func main() {
	cmd.Execute()
}
