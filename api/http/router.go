package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dkozyrev/devconnect/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. authMW is the token
// gate; it must run before every handler that needs the caller's identity.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	users *handlers.UsersHandler,
	profile *handlers.ProfileHandler,
	posts *handlers.PostsHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	api.Post("/users", users.Register)

	api.Post("/auth", auth.Login)
	api.Get("/auth", authMW, auth.CurrentUser)

	pr := api.Group("/profile")
	pr.Get("/", profile.List)
	pr.Get("/me", authMW, profile.Me)
	pr.Post("/", authMW, profile.Save)
	pr.Delete("/", authMW, profile.DeleteAccount)
	pr.Get("/experience", authMW, profile.ListExperience)
	pr.Post("/experience", authMW, profile.AddExperience)
	pr.Delete("/experience/:exp_id", authMW, profile.RemoveExperience)
	pr.Get("/education", authMW, profile.ListEducation)
	pr.Post("/education", authMW, profile.AddEducation)
	pr.Delete("/education/:edu_id", authMW, profile.RemoveEducation)
	pr.Get("/github/:username", profile.GithubRepos)

	po := api.Group("/posts", authMW)
	po.Post("/", posts.Create)
	po.Get("/", posts.List)
	po.Get("/:id", posts.Get)
	po.Delete("/:id", posts.Delete)
	po.Put("/like/:id", posts.Like)
	po.Put("/unlike/:id", posts.Unlike)
	po.Post("/comment/:id", posts.AddComment)
	po.Delete("/comment/:id/:comment_id", posts.RemoveComment)
}
