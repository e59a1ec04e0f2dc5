package main

import (
	"github.com/dwarvesf/funds-backend/internal/server"
)

// @title Funds API
// @version 1.0
// @description Withdrawal and deposit requests with admin adjudication.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	server.Init()
}
