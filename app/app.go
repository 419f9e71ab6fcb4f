// File: app/app.go
package app

import (
	"errors"
	"os"

	"securebank/cli"
	"securebank/config"
	"securebank/logger"
	"securebank/repository"
	"securebank/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	// --- Wiring All Layers Together ---
	// Repository owns persistence, service owns the rules, the menu is a
	// thin prompt loop on top.
	accountRepo := repository.NewFileAccountRepository(config.AppConfig.Storage.Path)
	accountService := service.NewAccountService(accountRepo)

	if err := accountService.Load(); err != nil {
		if errors.Is(err, repository.ErrCorruptStore) {
			logger.Log.Warn("Account store was corrupt; starting empty. The unreadable file was kept with a .corrupt suffix.")
		} else {
			logger.Log.Fatalf("Error loading account store: %v", err)
		}
	}

	menu := cli.NewMenu(os.Stdin, os.Stdout, accountService)
	menu.Run()

	logger.Log.Info("Session ended")
}
