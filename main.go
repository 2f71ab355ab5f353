package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/MuradEyvazli/vizyon-haber/cmd"
)

func main() {
	// optional .env, same contract as the previous deployment
	godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
