package main

import "github.com/Cinemaker123/nutrition-tracker/internal/cli"

func main() {
	cli.Execute()
}
