package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ameya/peekaboo/internal/app"
	"github.com/ameya/peekaboo/internal/server"
	"github.com/ameya/peekaboo/internal/store"
	"github.com/ameya/peekaboo/internal/tray"
)

func main() {
	fmt.Println("Peekaboo - Camera Games for Kids")

	// Optional .env file for local overrides
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dataDir := os.Getenv("PEEKABOO_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, ".peekaboo")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "peekaboo.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cameraID := 0
	if raw := os.Getenv("PEEKABOO_CAMERA"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid PEEKABOO_CAMERA value %q: %v", raw, err)
		}
		cameraID = parsed
	}

	a := app.New(app.Config{
		Store:    st,
		CameraID: cameraID,
	})
	a.SetEnabled(true)

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	cfg := server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		State:     a,
	}

	srv := server.New(cfg)

	addr := os.Getenv("PEEKABOO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Run the tray on the main thread; it blocks until Quit
	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	tr.OnOpen(func() {
		openBrowser("http://localhost" + addr)
	})
	tr.OnQuit(func() {
		a.Stop()
	})

	// Keep the tray's score item in sync with the finger game
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		var lastScore int
		for range ticker.C {
			if score := a.State().Score; score != lastScore {
				lastScore = score
				tr.SetScore(score)
			}
		}
	}()

	tr.Run()
}

// openBrowser opens the games UI in the default browser.
func openBrowser(url string) {
	if err := exec.Command("open", url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.peekaboo/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".peekaboo", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
