package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-hub-api/internal/config"
)

// tipos de arquivo aceitos para upload vinculado a campanhas
var allowedUploadTypes = map[string]bool{
	"screenshot": true,
	"brief":      true,
	"asset":      true,
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadURL é a URL temporária de escrita devolvida ao cliente
type UploadURL struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Storage interface {
	GenerateUploadURL(ctx context.Context, campaignID, uploadType, filename string) (*UploadURL, error)
}

type s3Storage struct {
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

// NewS3Storage cria o serviço de armazenamento baseado em URLs pré-assinadas
// do S3. O upload é feito direto pelo cliente, sem passar pela API
func NewS3Storage(ctx context.Context, cfg *config.Config) (Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar configuração da AWS")
	}

	client := s3.NewFromConfig(awsCfg)

	return &s3Storage{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Storage.Bucket,
		ttl:       time.Duration(cfg.Storage.UploadTTLMinutes) * time.Minute,
	}, nil
}

func (s *s3Storage) GenerateUploadURL(ctx context.Context, campaignID, uploadType, filename string) (*UploadURL, error) {
	if !allowedUploadTypes[uploadType] {
		return nil, errors.Errorf("tipo de upload inválido: %s", uploadType)
	}

	key := buildObjectKey(campaignID, uploadType, filename)

	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar URL de upload")
	}

	return &UploadURL{
		URL:       request.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// buildObjectKey monta a chave do objeto isolando cada campanha em um prefixo
// próprio e higienizando o nome do arquivo enviado pelo cliente
func buildObjectKey(campaignID, uploadType, filename string) string {
	safe := unsafeFileChars.ReplaceAllString(path.Base(filename), "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		safe = "upload"
	}

	return fmt.Sprintf("campaigns/%s/%s/%d_%s", campaignID, uploadType, time.Now().UnixNano(), safe)
}
