package admin

import (
	"context"

	"github.com/studyabroad/cms-api/services"
)

// ImageStore is the media backend behind POST /admin/media
type ImageStore interface {
	UploadImage(ctx context.Context, folder string, data []byte) (string, string, error)
	Delete(ctx context.Context, key string) error
}

// AdminHandler serves the back-office endpoints that are not tied to one
// content type: settings, users, the dashboard and media uploads.
type AdminHandler struct {
	settings  *services.SettingService
	users     *services.UserService
	dashboard *services.DashboardService
	media     ImageStore
}

// NewAdminHandler creates a new admin handler. media may be nil when no
// storage bucket is configured; uploads then answer 503.
func NewAdminHandler(settings *services.SettingService, users *services.UserService, dashboard *services.DashboardService, media ImageStore) *AdminHandler {
	return &AdminHandler{
		settings:  settings,
		users:     users,
		dashboard: dashboard,
		media:     media,
	}
}
