package courseplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/courseforge/course-platform/internal/grpc/client"
	statshandler "github.com/courseforge/course-platform/internal/http/handlers/admin/stats"
	"github.com/courseforge/course-platform/internal/http/handlers/auth/login"
	"github.com/courseforge/course-platform/internal/http/handlers/auth/register"
	blogcreate "github.com/courseforge/course-platform/internal/http/handlers/blog/create"
	bloglist "github.com/courseforge/course-platform/internal/http/handlers/blog/list"
	blogread "github.com/courseforge/course-platform/internal/http/handlers/blog/read"
	coursecreate "github.com/courseforge/course-platform/internal/http/handlers/course/create"
	courselist "github.com/courseforge/course-platform/internal/http/handlers/course/list"
	courseread "github.com/courseforge/course-platform/internal/http/handlers/course/read"
	courseremove "github.com/courseforge/course-platform/internal/http/handlers/course/remove"
	courseupdate "github.com/courseforge/course-platform/internal/http/handlers/course/update"
	"github.com/courseforge/course-platform/internal/http/handlers/dashboard"
	"github.com/courseforge/course-platform/internal/http/handlers/health"
	lessonlist "github.com/courseforge/course-platform/internal/http/handlers/lesson/list"
	lessonread "github.com/courseforge/course-platform/internal/http/handlers/lesson/read"
	"github.com/courseforge/course-platform/internal/http/handlers/payment/paymentcreate"
	"github.com/courseforge/course-platform/internal/http/handlers/payment/paymentlist"
	"github.com/courseforge/course-platform/internal/http/handlers/payment/paymentwebhook"
	"github.com/courseforge/course-platform/internal/http/handlers/progress/complete"
	"github.com/courseforge/course-platform/internal/http/handlers/progress/summary"
	trialstatus "github.com/courseforge/course-platform/internal/http/handlers/trial/status"
	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	accessservice "github.com/courseforge/course-platform/internal/services/access"
	blogservice "github.com/courseforge/course-platform/internal/services/blog"
	courseservice "github.com/courseforge/course-platform/internal/services/course"
	paymentservice "github.com/courseforge/course-platform/internal/services/payment"
	progressservice "github.com/courseforge/course-platform/internal/services/progress"
)

// Services объединяет зависимости HTTP-маршрутов.
type Services struct {
	Auth     *client.AuthClient
	Access   *accessservice.Service
	Course   *courseservice.Service
	Blog     *blogservice.Service
	Progress *progressservice.Service
	Payment  *paymentservice.Service
	Stats    statshandler.Service
	Ready    health.ReadinessChecker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/blog", bloglist.New(logger, s.Blog).ServeHTTP)
		r.Get("/blog/{slug}", blogread.New(logger, s.Blog).ServeHTTP)
		r.Get("/health", health.New(logger, s.Ready).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/trial/status", trialstatus.New(logger, s.Access).ServeHTTP)
			r.Get("/dashboard", dashboard.New(logger, s.Access, s.Progress).ServeHTTP)

			// Чтение урока проверяет доступ в обработчике: бесплатные
			// preview-уроки остаются доступны после окончания пробного периода.
			r.Get("/lessons/{id}", lessonread.New(logger, s.Course, s.Access).ServeHTTP)

			r.Post("/payment", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, s.Payment).ServeHTTP)

			// Каталог и прогресс требуют активного пробного периода или подписки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AccessMiddleware(logger, s.Access))
				r.Get("/courses", courselist.New(logger, s.Course).ServeHTTP)
				r.Get("/courses/{id}", courseread.New(logger, s.Course).ServeHTTP)
				r.Get("/courses/{id}/lessons", lessonlist.New(logger, s.Course).ServeHTTP)
				r.Get("/progress", summary.New(logger, s.Progress).ServeHTTP)
				r.Post("/lessons/{id}/complete", complete.New(logger, s.Progress).ServeHTTP)
			})

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/courses", coursecreate.New(logger, s.Course).ServeHTTP)
				r.Put("/courses/{id}", courseupdate.New(logger, s.Course).ServeHTTP)
				r.Delete("/courses/{id}", courseremove.New(logger, s.Course).ServeHTTP)
				r.Post("/blog", blogcreate.New(logger, s.Blog).ServeHTTP)
				r.Get("/admin/stats", statshandler.New(logger, s.Stats).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment, webhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
