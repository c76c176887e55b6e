package main

import (
	"flag"
	"log"

	"campuspulse/server/cmd"
	"campuspulse/server/env"
	"campuspulse/server/logger"
	"campuspulse/server/models"
	"campuspulse/server/renv"
)

var command = flag.String("cmd", "", "Command mode")
var db = flag.String("db", "", "Database command: migrate, rollback, generate, status")
var migrationName = flag.String("name", "", "Migration name (for generate)")
var steps = flag.Int("steps", 1, "Number of migrations to rollback")

func main() {
	flag.Parse()
	log.Println("Starting campuspulse...")

	// Parse environment configuration
	var envConfig *env.ENV
	renv.ParseCmd(&envConfig)
	envConfig.SetDefaults()
	env.E = envConfig

	if env.E.IsDevelopment() {
		logger.InitDevelopment()
	} else {
		logger.InitProduction()
	}

	logger.Infof("Environment: %s", env.E.Environment)
	logger.Infof("Server Name: %s", env.E.ServerName)

	// Handle database commands
	if *db != "" {
		cmd.HandleDB(*db, *migrationName, *steps)
		return
	}

	// Handle other commands
	if *command != "" {
		instance := models.NewModels(true)
		instance.RunCmd(*command)
		return
	}

	// Start server
	models.NewModels(false)
	select {}
}
