package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/joho/godotenv"

	"github.com/cryptotrack/crypto-tracker/internal/api"
	"github.com/cryptotrack/crypto-tracker/internal/config"
	"github.com/cryptotrack/crypto-tracker/internal/tracker"
	"github.com/cryptotrack/crypto-tracker/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.cryptotrack.crypto-tracker"
	AppName = "Crypto Tracker"

	ConfigFile = "crypto-tracker.yml"

	WindowWidth  = 900
	WindowHeight = 560
)

func main() {
	// Log version information
	fmt.Printf("Crypto Tracker v%s starting...\n", version)

	// Load .env overrides when present
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load process configuration
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp, cfg)
	client := api.NewClient(settings.GetAPIBaseURL())
	trackerSvc := tracker.NewService(client, settings.PollInterval())

	// Create and setup UI
	ui.NewRootUI(myWindow, trackerSvc, settings)

	// Begin probing and polling; disarm timers when the window closes
	trackerSvc.Start()
	myWindow.SetOnClosed(trackerSvc.Stop)

	// Show and run
	myWindow.ShowAndRun()
}
