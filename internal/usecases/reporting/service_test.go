package reporting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-hub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
	"github.com/vfg2006/campaign-hub-api/internal/usecases/workflow"
	"go.uber.org/mock/gomock"
)

func TestService_AdminStats(t *testing.T) {
	t.Run("Contadores agregados do painel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockCampaignRepo)

		mockCampaignRepo.EXPECT().CountAll(gomock.Any()).Return(42, nil)
		mockCampaignRepo.EXPECT().
			CountByStatus(gomock.Any(), domain.CampaignStatusGenerated, domain.CampaignStatusReviewed).
			Return(7, nil)
		mockCampaignRepo.EXPECT().
			CountByStatus(gomock.Any(), domain.CampaignStatusMatching).
			Return(3, nil)
		mockCampaignRepo.EXPECT().CountOverdue(gomock.Any(), gomock.Any()).Return(2, nil)

		stats, err := service.AdminStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, stats.TotalCampaigns)
		assert.Equal(t, 7, stats.PendingReview)
		assert.Equal(t, 3, stats.PendingContracts)
		assert.Equal(t, 2, stats.DelayedContracts)
	})

	t.Run("Falha de banco é propagada como erro de armazenamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(mockCampaignRepo)

		mockCampaignRepo.EXPECT().CountAll(gomock.Any()).Return(0, assert.AnError)

		_, err := service.AdminStats(context.Background())
		assert.ErrorIs(t, err, workflow.ErrStorage)
	})
}
