package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCampaign_IsOverdue(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		campaign Campaign
		want     bool
	}{
		{
			name:     "Campanha em execução com prazo vencido",
			campaign: Campaign{Status: CampaignStatusRunning, DeadlineDate: &yesterday},
			want:     true,
		},
		{
			name:     "Campanha em execução dentro do prazo",
			campaign: Campaign{Status: CampaignStatusRunning, DeadlineDate: &tomorrow},
			want:     false,
		},
		{
			name:     "Campanha fora de execução nunca está vencida",
			campaign: Campaign{Status: CampaignStatusOpen, DeadlineDate: &yesterday},
			want:     false,
		},
		{
			name:     "Campanha sem prazo definido",
			campaign: Campaign{Status: CampaignStatusRunning},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.campaign.IsOverdue(now))
		})
	}
}

func TestCampaignStatus_IsTerminal(t *testing.T) {
	assert.True(t, CampaignStatusCompleted.IsTerminal())
	assert.True(t, CampaignStatusCancelled.IsTerminal())
	assert.True(t, CampaignStatusFailed.IsTerminal())
	assert.False(t, CampaignStatusRunning.IsTerminal())
	assert.False(t, CampaignStatusGenerated.IsTerminal())
}
