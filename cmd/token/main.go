// Command token issues an access token signed with JWT_SECRET, for local
// development against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/middleware"
	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

func main() {
	userID := flag.Uint("user", 0, "user id the token is issued for")
	admin := flag.Bool("admin", false, "grant the admin role")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	if *userID == 0 || appConfig.Auth.JWTSecret == "" {
		logger.Error("[main] user id and JWT_SECRET are required", map[string]string{
			"user": strconv.FormatUint(uint64(*userID), 10),
		})
		os.Exit(1)
	}

	token, err := middleware.SignToken(appConfig.Auth.JWTSecret, funds.Actor{ID: *userID, IsAdmin: *admin}, *ttl)
	if err != nil {
		logger.Error("[main][SignToken] failed to sign token", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	fmt.Println(token)
}
