package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
)

// ErrInvalidURI indica um endereço s3:// malformado.
var ErrInvalidURI = errors.New("invalid s3 uri")

// S3SourceImpl baixa planilhas do S3 com cache de configuração por profile.
type S3SourceImpl struct {
	cfgCache map[string]aws.Config
	verified map[string]string
	mu       sync.Mutex
}

// NewS3Source cria uma nova implementação do ObjectSource baseada no S3.
func NewS3Source() repository.ObjectSource {
	return &S3SourceImpl{
		cfgCache: make(map[string]aws.Config),
		verified: make(map[string]string),
	}
}

// ParseURI separa bucket e chave de um endereço s3://bucket/chave.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return bucket, key, nil
}

// Fetch baixa o objeto para um arquivo temporário com a mesma extensão da chave.
func (r *S3SourceImpl) Fetch(ctx context.Context, uri string, awsProfile string) (string, func(), error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", types.ErrUnsupportedInput, err)
	}

	cfg, err := r.getAWSConfig(ctx, awsProfile)
	if err != nil {
		return "", nil, err
	}

	if _, err := r.verifyIdentity(ctx, cfg, awsProfile); err != nil {
		return "", nil, err
	}

	client := s3.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to get %s: %w", uri, err)
	}
	defer out.Body.Close()

	tmp, err := os.CreateTemp("", "retail-input-*"+path.Ext(key))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, out.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to download %s: %w", uri, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	return tmp.Name(), cleanup, nil
}

func (r *S3SourceImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

// verifyIdentity confirma as credenciais uma vez por profile antes do download.
func (r *S3SourceImpl) verifyIdentity(ctx context.Context, cfg aws.Config, profile string) (string, error) {
	r.mu.Lock()
	if account, ok := r.verified[profile]; ok {
		r.mu.Unlock()
		return account, nil
	}
	r.mu.Unlock()

	result, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error validating credentials for profile %s: %w", profile, err)
	}
	account := aws.ToString(result.Account)

	r.mu.Lock()
	r.verified[profile] = account
	r.mu.Unlock()
	return account, nil
}
