package main

import (
	stdLog "log"

	"github.com/Astemirdum/library-console/console/app"
	"github.com/Astemirdum/library-console/console/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using the environment: ", err)
	}
	if err := app.RunActivityLog(config.NewConfig()); err != nil {
		stdLog.Fatal("activity log: ", err)
	}
}
