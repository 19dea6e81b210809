package notification

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-hub-api/internal/config"
)

// Notifier envia notificações por e-mail para os participantes da plataforma.
// O envio é best-effort: falhas são logadas e nunca bloqueiam o fluxo principal
type Notifier interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type sesNotifier struct {
	client *ses.Client
	sender string
}

// NewSESNotifier cria o notificador baseado no Amazon SES usando a cadeia
// padrão de credenciais da AWS
func NewSESNotifier(ctx context.Context, cfg *config.Config) (Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração da AWS: %w", err)
	}

	return &sesNotifier{
		client: ses.NewFromConfig(awsCfg),
		sender: cfg.AWS.EmailSender,
	}, nil
}

func (n *sesNotifier) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	input := &ses.SendEmailInput{
		Source: &n.sender,
		Destination: &types.Destination{
			ToAddresses: to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("erro ao enviar e-mail: %w", err)
	}

	return nil
}

// noopNotifier descarta notificações. Usado quando o envio de e-mails está
// desabilitado na configuração (ambientes locais e de teste)
type noopNotifier struct{}

func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) Send(_ context.Context, to []string, subject, _ string) error {
	logrus.Debugf("Notificação descartada (envio desabilitado): %q para %v", subject, to)
	return nil
}
