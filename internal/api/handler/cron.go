package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/internal/scheduler"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

// CronJobServices agrupa os serviços agendados expostos nas rotas de
// administração de cron
type CronJobServices struct {
	StatusTransition *scheduler.StatusTransitionService
	DeadlineReminder *scheduler.DeadlineReminderService
	OverdueDetection *scheduler.OverdueDetectionService
}

// RunCronJob dispara manualmente a execução de um job agendado
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		logrus.Infof("INIT - RunCronJob: %s", jobType)

		switch jobType {
		case "status-transition":
			services.StatusTransition.TriggerManualSync()

		case "deadline-reminder":
			services.DeadlineReminder.TriggerManualSync()

		case "overdue-detection":
			services.OverdueDetection.TriggerManualSync()

		case "all":
			services.StatusTransition.TriggerManualSync()
			services.DeadlineReminder.TriggerManualSync()
			services.OverdueDetection.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de job desconhecido: "+jobType, nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Execução iniciada",
			"job":     jobType,
		})
	}
}

// GetCronStatus retorna o estado de cada job agendado
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status-transition": services.StatusTransition.GetStatus(),
			"deadline-reminder": services.DeadlineReminder.GetStatus(),
			"overdue-detection": services.OverdueDetection.GetStatus(),
		})
	}
}
