// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/pkg/handler"
)

// HTTPServer manages the fiber server that serves the game API.
type HTTPServer struct {
	app     *fiber.App
	port    int
	handler *handler.Handler
}

// NewHTTPServer creates a new HTTP server instance.
func NewHTTPServer(port int, h *handler.Handler) *HTTPServer {
	return &HTTPServer{
		port:    port,
		handler: h,
	}
}

// Setup creates the fiber app and mounts the game routes.
func (s *HTTPServer) Setup() error {
	s.app = fiber.New(fiber.Config{
		AppName:               "beat-party",
		DisableStartupMessage: true,
	})
	s.app.Use(requestLogger)
	s.handler.Register(s.app)
	return nil
}

// App exposes the fiber app, available after Setup.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Start begins serving on the configured port.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("HTTP server listening on port %d", s.port)
		if err := s.app.Listen(fmt.Sprintf(":%d", s.port)); err != nil {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP server...")
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	logrus.Info("HTTP server stopped")
	return nil
}

func requestLogger(c *fiber.Ctx) error {
	err := c.Next()
	logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"status": c.Response().StatusCode(),
	}).Debug("handled request")
	return err
}
