package main

import (
	"log"

	"github.com/Psy1ALise/travel-planner-public/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
