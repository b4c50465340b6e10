package admin

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gorodok/gorodok-api/internal/middleware"
	"github.com/gorodok/gorodok-api/internal/utils"
)

// SetupRoutes настраивает маршруты консоли администратора
func (s *AdminService) SetupRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(s.jwtService, utils.RoleAdmin))

	// Счетчики консоли
	adminGroup.Get("/stats", s.GetStats)

	// Очереди модерации заведений
	adminGroup.Get("/shops", s.GetShops)
	adminGroup.Get("/shops/pending", s.GetPendingShops)
	adminGroup.Post("/shops/:id/approve", s.ApproveShop)
	adminGroup.Post("/shops/:id/reject", s.RejectShop)
	adminGroup.Post("/shops/:id/reset", s.ResetShop)
	adminGroup.Post("/shops/:id/featured", s.SetShopFeatured)
	adminGroup.Post("/shops/:id/sponsored", s.SetShopSponsored)
	adminGroup.Delete("/shops/:id", s.DeleteShop)

	// Очереди модерации объявлений
	adminGroup.Get("/ads", s.GetAds)
	adminGroup.Get("/ads/pending", s.GetPendingAds)
	adminGroup.Post("/ads/:id/approve", s.ApproveAd)
	adminGroup.Post("/ads/:id/reject", s.RejectAd)
	adminGroup.Post("/ads/:id/reset", s.ResetAd)
	adminGroup.Post("/ads/:id/paid", s.MarkAdPaid)
	adminGroup.Post("/ads/:id/live", s.MarkAdLive)
	adminGroup.Post("/ads/:id/featured", s.SetAdFeatured)
	adminGroup.Post("/ads/:id/sponsored", s.SetAdSponsored)
	adminGroup.Post("/ads/expire-due", s.ExpireDueAds)
	adminGroup.Delete("/ads/:id", s.DeleteAd)
}
