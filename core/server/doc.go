// Package server holds the HTTP server configuration.
//
// The start command owns the fiber application; this package only describes how it listens:
// port, API key for write endpoints, read timeout and request body limit.
//
// # Usage
//
//	if err := cfg.Server.Validate(); err != nil {
//	    return err
//	}
//	app := fiber.New(fiber.Config{ReadTimeout: cfg.Server.ReadTimeout(), BodyLimit: cfg.Server.BodyLimit()})
//	app.Listen(cfg.Server.Address())
package server
