// Package handlers maps HTTP requests onto the checker pipeline and
// shapes the JSON responses.
package handlers

import (
	"time"

	"imeicheck/pkg/checker"
	"imeicheck/pkg/config"
)

// HandlerService provides HTTP handlers for the API
type HandlerService struct {
	config    *config.Config
	checker   *checker.Service
	startedAt time.Time
}

// NewHandlerService creates a new handler service
func NewHandlerService(cfg *config.Config, svc *checker.Service) *HandlerService {
	return &HandlerService{
		config:    cfg,
		checker:   svc,
		startedAt: time.Now(),
	}
}
