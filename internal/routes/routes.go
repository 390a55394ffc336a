package routes

import (
	"net/http"

	"github.com/foliolab/folio/internal/app"
	"github.com/foliolab/folio/internal/handler"
	"github.com/foliolab/folio/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	userImage := handler.NewUserImageHandler(app.UserImageService)
	contact := handler.NewContactHandler(app.ContactService)
	skill := handler.NewSkillHandler(app.SkillService)
	portfolioItem := handler.NewPortfolioItemHandler(app.PortfolioService)
	relation := handler.NewRelationHandler(app.PortfolioService)
	experience := handler.NewExperienceHandler(app.ExperienceService)
	education := handler.NewEducationHandler(app.EducationService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Visitor
	mux.HandleFunc("GET /api/visitor/user", user.Extended)
	mux.HandleFunc("GET /api/visitor/portfolio-items", portfolioItem.AllExtended)

	// Sign-in is the one admin path outside the auth gate (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/admin/sign-in", rateLimiter(auth.SignIn))

	// ============================================================================
	// ADMIN ROUTES (owner session required)
	// ============================================================================

	admin := http.NewServeMux()

	admin.HandleFunc("POST /api/admin/sign-out", auth.SignOut)

	// Profile
	admin.HandleFunc("POST /api/admin/user/update", user.Update)
	admin.HandleFunc("POST /api/admin/cv", user.UploadCV)
	admin.HandleFunc("DELETE /api/admin/cv", user.DeleteCV)
	admin.HandleFunc("POST /api/admin/user-image", userImage.Upsert)
	admin.HandleFunc("DELETE /api/admin/user-image", userImage.Delete)

	// Contacts
	admin.HandleFunc("POST /api/admin/contact/create", contact.Create)
	admin.HandleFunc("POST /api/admin/contact/update/{id}", contact.Update)
	admin.HandleFunc("POST /api/admin/contact/delete/{id}", contact.Delete)
	admin.HandleFunc("POST /api/admin/contact/reorder", contact.Reorder)

	// Skills
	admin.HandleFunc("POST /api/admin/skill/create", skill.Create)
	admin.HandleFunc("GET /api/admin/skill/extended/{id}", skill.Extended)
	admin.HandleFunc("POST /api/admin/skill/update/{id}", skill.Update)
	admin.HandleFunc("POST /api/admin/skill/delete/{id}", skill.Delete)
	admin.HandleFunc("POST /api/admin/skill/reorder", skill.Reorder)
	admin.HandleFunc("POST /api/admin/skill/image/upload/{id}", skill.UploadImage)
	admin.HandleFunc("POST /api/admin/skill/image/cleanup/{id}", skill.CleanupImages)

	// Portfolio items
	admin.HandleFunc("POST /api/admin/portfolio-item/create", portfolioItem.Create)
	admin.HandleFunc("GET /api/admin/portfolio-item/extended/{id}", portfolioItem.Extended)
	admin.HandleFunc("POST /api/admin/portfolio-item/update/{id}", portfolioItem.Update)
	admin.HandleFunc("DELETE /api/admin/portfolio-item/{id}", portfolioItem.Delete)
	admin.HandleFunc("POST /api/admin/portfolio-item/reorder", portfolioItem.Reorder)
	admin.HandleFunc("POST /api/admin/portfolio-item/image/upload/{id}", portfolioItem.UploadImage)
	admin.HandleFunc("POST /api/admin/portfolio-item/image/cleanup/{id}", portfolioItem.CleanupImages)
	admin.HandleFunc("POST /api/admin/portfolio-item/cover-image/{id}", portfolioItem.UpsertCoverImage)
	admin.HandleFunc("DELETE /api/admin/portfolio-item/cover-image/{id}", portfolioItem.DeleteCoverImage)

	// Relations
	admin.HandleFunc("POST /api/admin/relations/portfolio-item-skill/attach", relation.Attach)
	admin.HandleFunc("POST /api/admin/relations/portfolio-item-skill/detach", relation.Detach)

	// Experiences
	admin.HandleFunc("POST /api/admin/experience/create", experience.Create)
	admin.HandleFunc("POST /api/admin/experience/update/{id}", experience.Update)
	admin.HandleFunc("POST /api/admin/experience/delete/{id}", experience.Delete)

	// Educations
	admin.HandleFunc("POST /api/admin/education/create", education.Create)
	admin.HandleFunc("POST /api/admin/education/update/{id}", education.Update)
	admin.HandleFunc("POST /api/admin/education/delete/{id}", education.Delete)

	// The sign-in pattern above is more specific, so it stays outside the gate.
	mux.Handle("/api/admin/", middleware.RequireAdmin(app.AuthService)(admin))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
