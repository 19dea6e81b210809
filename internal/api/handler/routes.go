package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-hub-api/infrastructure/storage"
	"github.com/vfg2006/campaign-hub-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/applying"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/auditing"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/contacting"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/lifecycling"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/submitting"
	"github.com/vfg2006/campaign-hub-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Campaigns(service lifecycling.Lifecycler, eventLogger auditing.EventLogger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
		// Rota de descoberta separada de /v1/campaigns/:id por limitação do
		// roteador com segmentos estáticos sob o mesmo prefixo
		{
			Path:        "/v1/open-campaigns",
			Method:      http.MethodGet,
			Handler:     ListOpenCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodGet,
			Handler:     GetCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/transition",
			Method:      http.MethodPost,
			Handler:     TransitionCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
		{
			Path:        "/v1/campaigns/:id/events",
			Method:      http.MethodGet,
			Handler:     ListCampaignEvents(eventLogger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
	}
}

func Applications(service applying.Applier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/applications",
			Method:      http.MethodPost,
			Handler:     ApplyToCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.InfluencerOnly()},
		},
		{
			Path:        "/v1/campaigns/:id/applications",
			Method:      http.MethodGet,
			Handler:     ListCampaignApplications(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
		{
			Path:        "/v1/campaigns/:id/applications/:application_id",
			Method:      http.MethodDelete,
			Handler:     CancelApplication(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.InfluencerOnly()},
		},
		{
			Path:        "/v1/campaigns/:id/applications/:application_id/action",
			Method:      http.MethodPost,
			Handler:     DecideApplication(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
		{
			Path:        "/v1/me/applications",
			Method:      http.MethodGet,
			Handler:     ListMyApplications(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.InfluencerOnly()},
		},
	}
}

func Submissions(service submitting.Submitter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/submissions",
			Method:      http.MethodPost,
			Handler:     SubmitContent(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.InfluencerOnly()},
		},
		{
			Path:        "/v1/campaigns/:id/submissions",
			Method:      http.MethodGet,
			Handler:     ListCampaignSubmissions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/submissions/:submission_id/review",
			Method:      http.MethodPost,
			Handler:     ReviewSubmission(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdvertiserOrAdmin()},
		},
	}
}

func Contact(service contacting.Contacter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/contact",
			Method:  http.MethodPost,
			Handler: SubmitContact(service),
		},
		{
			Path:        "/v1/contact",
			Method:      http.MethodGet,
			Handler:     ListContacts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/contact/:id",
			Method:      http.MethodPut,
			Handler:     UpdateContactStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Admin(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/stats",
			Method:      http.MethodGet,
			Handler:     GetAdminStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Storage(service storage.Storage) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/storage/upload-url",
			Method:      http.MethodPost,
			Handler:     GenerateUploadURL(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
