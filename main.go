package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/veandco/go-sdl2/sdl"

	"feed-frame/pkg/settings"
	"feed-frame/pkg/sharedTypes"
	"feed-frame/screens/feed"
)

const (
	targetFPS      = 60
	fallbackWidth  = 1920
	fallbackHeight = 1080
)

func main() {
	// CRITICAL: SDL2 requires all rendering calls on the main OS thread
	runtime.LockOSThread()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := loadConfig()
	windowTitle := cfg.title
	if windowTitle == "" {
		windowTitle = "Feed Frame"
	}

	if err := initializeSDL2(); err != nil {
		log.Fatalf("Failed to initialize SDL2: %v", err)
	}
	defer func() {
		log.Println("Shutting down SDL2...")
		sdl.Quit()
	}()

	screenWidth, screenHeight := getDisplayDimensions()
	log.Printf("Starting %s | Resolution: %dx%d", windowTitle, screenWidth, screenHeight)

	window, err := createWindow(windowTitle, screenWidth, screenHeight)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := createRenderer(window)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	source := sharedTypes.FeedSource{Manifest: cfg.manifest, Title: windowTitle}
	screen := feed.NewFeedScreen(source, cfg.startIndex)
	screen.SetRenderer(renderer)
	defer screen.Close()

	runFeedLoop(screen, renderer, screenWidth, screenHeight)

	log.Println("Feed Frame shutting down...")
}

type appConfig struct {
	manifest   string
	title      string
	startIndex int
}

// loadConfig resolves configuration from settings.json with environment
// variable overrides.
func loadConfig() appConfig {
	s := settings.Load()

	cfg := appConfig{
		manifest:   s.Manifest,
		title:      os.Getenv("FEED_TITLE"),
		startIndex: s.StartIndex,
	}
	if v := os.Getenv("FEED_MANIFEST"); v != "" {
		cfg.manifest = v
	}
	if v := os.Getenv("FEED_START_INDEX"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil {
			cfg.startIndex = idx
		} else {
			log.Printf("Warning: invalid FEED_START_INDEX %q: %v", v, err)
		}
	}
	return cfg
}

// initializeSDL2 initializes SDL2, trying video drivers in order until one
// works.
func initializeSDL2() error {
	var videoDrivers []string
	if envDriver := os.Getenv("SDL_VIDEODRIVER"); envDriver != "" {
		log.Printf("Using environment SDL_VIDEODRIVER: %s", envDriver)
		videoDrivers = []string{envDriver, "fbcon", "software", "dummy"}
	} else if runtime.GOOS == "darwin" {
		videoDrivers = []string{"cocoa", "software", "dummy"}
	} else {
		videoDrivers = []string{"kmsdrm", "drm", "fbcon", "wayland", "x11", "software", "dummy"}
	}

	for _, driver := range videoDrivers {
		log.Printf("Attempting SDL2 initialization with %s driver", driver)
		os.Setenv("SDL_VIDEODRIVER", driver)

		if err := trySDLInitialization(driver); err != nil {
			log.Printf("SDL2 initialization failed with %s driver: %v", driver, err)
			continue
		}

		log.Printf("SDL2 successfully initialized with %s driver", driver)
		return nil
	}
	return fmt.Errorf("all SDL2 video drivers failed")
}

// trySDLInitialization attempts a single driver, applying its hints first.
func trySDLInitialization(driver string) error {
	sdl.Quit()

	sdl.SetHint(sdl.HINT_VIDEODRIVER, driver)
	switch driver {
	case "kmsdrm":
		sdl.SetHint("SDL_VIDEO_KMSDRM_DEVINDEX", "0")
		sdl.SetHint("SDL_RENDER_VSYNC", "1")
	case "fbcon":
		sdl.SetHint("SDL_FBDEV", "/dev/fb0")
	case "x11":
		sdl.SetHint("SDL_VIDEO_X11_NET_WM_BYPASS_COMPOSITOR", "0")
	case "software":
		sdl.SetHint("SDL_FRAMEBUFFER_ACCELERATION", "0")
	}

	switch driver {
	case "kmsdrm", "drm":
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "opengles2")
	case "cocoa":
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "opengl")
	default:
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, "software")
	}
	sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("SDL_INIT_VIDEO failed: %v", err)
	}

	driverName, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		return fmt.Errorf("failed to get video driver: %v", err)
	}
	log.Printf("Video driver initialized: %s", driverName)
	return nil
}

// getDisplayDimensions returns the screen dimensions or fallback values.
func getDisplayDimensions() (int32, int32) {
	displayMode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		log.Printf("Warning: Failed to get display mode, using fallback: %v", err)
		return fallbackWidth, fallbackHeight
	}
	return displayMode.W, displayMode.H
}

func createWindow(title string, width, height int32) (*sdl.Window, error) {
	return sdl.CreateWindow(
		title,
		0,
		0,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_FULLSCREEN,
	)
}

// createRenderer prefers hardware acceleration on GPU drivers and falls back
// to the software renderer everywhere else.
func createRenderer(window *sdl.Window) (*sdl.Renderer, error) {
	currentDriver, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		currentDriver = "unknown"
	}

	var renderer *sdl.Renderer
	if currentDriver == "kmsdrm" || currentDriver == "drm" || currentDriver == "cocoa" {
		var rendererFlags uint32 = sdl.RENDERER_ACCELERATED
		if currentDriver != "kmsdrm" {
			// kmsdrm on the Pi trips VC4 async flip errors with VSync enabled.
			rendererFlags |= sdl.RENDERER_PRESENTVSYNC
		}
		renderer, err = sdl.CreateRenderer(window, -1, rendererFlags)
		if err != nil {
			log.Printf("Hardware acceleration failed, trying software: %v", err)
			renderer = nil
		}
	}

	if renderer == nil {
		log.Printf("Using software renderer for %s driver", currentDriver)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, err
		}
	}

	// Alpha blending for the loading-gate overlay.
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return renderer, nil
}

// runFeedLoop executes the main SDL2 loop at the target frame rate.
func runFeedLoop(screen *feed.FeedScreen, renderer *sdl.Renderer, width, height int32) {
	running := true
	frameTime := time.Second / targetFPS
	lastTime := time.Now()

	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}

		if err := screen.Update(sdl.GetKeyboardState()); err != nil {
			log.Printf("Feed update error: %v", err)
			running = false
			break
		}

		renderer.SetDrawColor(0, 0, 0, 255)
		renderer.Clear()
		screen.Draw(renderer, width, height)
		renderer.Present()

		elapsed := time.Since(lastTime)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
		lastTime = time.Now()
	}
}
