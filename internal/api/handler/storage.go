package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/infrastructure/storage"
	"github.com/vfg2006/campaign-hub-api/pkg/apiErrors"
)

type UploadURLRequest struct {
	CampaignID string `json:"campaign_id"`
	UploadType string `json:"upload_type"`
	Filename   string `json:"filename"`
}

// GenerateUploadURL emite uma URL pré-assinada para upload direto de arquivo
func GenerateUploadURL(service storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateUploadURL")

		var req UploadURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.CampaignID == "" || req.UploadType == "" || req.Filename == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "campaign_id, upload_type e filename são obrigatórios", nil)
			return
		}

		uploadURL, err := service.GenerateUploadURL(r.Context(), req.CampaignID, req.UploadType, req.Filename)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar URL de upload", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(uploadURL)
	}
}
