package main

import (
	"github.com/Sahithi-Kallem/invisiface/cmd"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	cmd.Execute()
}
