package bootstrap

import (
	"ferro-backend/internal/app"
	"ferro-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deploys (the api handler imports
// this package, not internal). The expiry sweep ticker is not started here;
// serverless invocations rely on the sweep-expirations endpoint instead.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fiberApp, _, _, _, err := app.CreateApp(cfg)
	return fiberApp, err
}
