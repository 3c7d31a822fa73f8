package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/festijeux/market-api/cmd/app"
)

// @title        Festijeux market API
// @description  Consignment, sales and seller settlement for board game festivals.
//
// @contact.name  Festijeux back office
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
