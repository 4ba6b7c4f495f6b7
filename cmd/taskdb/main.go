package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/app"
	"github.com/dmitrijs2005/tasktracker/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(cfg, os.Stdout)

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		os.Exit(1)
	}

}
