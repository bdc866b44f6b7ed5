package handler

import (
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/config"
	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/MikolajSapek/staffer/backend/internal/repository"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	engine      *staffing.Engine
	now         func() time.Time

	Mux *chi.Mux
}

// NewHandler 中 guard 为 nil 时使用进程内的 guard
func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, guard staffing.Guard) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	var hook staffing.RatingHook
	if repo != nil {
		hook = &ratingRecorder{repository: repo}
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		engine:      staffing.New(repo, guard, hook),
		now:         time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)

	// 令牌由外部认证服务签发，以下 API 只对企业开放
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.RequiredRole([]domain.Role{domain.RoleCompany}))
		r.Use(h.company)

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.Post("/", h.CreateShift)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.Get("/", h.GetShift)
				r.Get("/applications", h.GetShiftApplications)
				r.Post("/fill-vacancies", h.FillVacancies)
				r.Post("/reject-pending", h.RejectAllPending)
			})
		})

		r.Get("/applicants", h.GetApplicants)

		r.Route("/applications/{id}", func(r chi.Router) {
			r.Use(h.application)
			r.Post("/accept", h.AcceptApplication)
			r.Post("/reject", h.RejectApplication)
			r.Post("/waitlist", h.WaitlistApplication)
		})

		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", h.GetTimesheets)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timesheet)
				r.Get("/", h.GetTimesheet)
				r.Get("/correction-preview", h.GetCorrectionPreview)
				r.Post("/approve", h.ApproveTimesheet)
				r.Post("/dispute", h.DisputeTimesheet)
				r.Post("/correct", h.CorrectTimesheet)
				r.Post("/review", h.ReviewTimesheet)
			})
		})
	})
}
