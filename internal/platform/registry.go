package platform

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// ClientKey identifies one cached client: a region plus the credential
// scope it was built with.
type ClientKey struct {
	Region  string
	Profile string
	// AccessKeyID only; the secret never participates in the key.
	AccessKeyID string
}

// Credentials selects how the AWS config is resolved, in order of
// precedence: named profile, explicit key pair, ambient default chain.
type Credentials struct {
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

func (c Credentials) key(region string) ClientKey {
	return ClientKey{Region: region, Profile: c.Profile, AccessKeyID: c.AccessKeyID}
}

// BuildFunc constructs a LogsAPI for a region/credential pair.
type BuildFunc func(ctx context.Context, region string, creds Credentials) (LogsAPI, error)

// Registry caches one LogsAPI client per (region, credential scope).
// Population is lazy and idempotent: clients are side-effect-free, so two
// callers racing on the same key may both construct one and the last
// writer wins.
type Registry struct {
	mu      sync.Mutex
	clients map[ClientKey]LogsAPI
	creds   Credentials
	build   BuildFunc
}

// NewRegistry creates a registry that builds real CloudWatch Logs clients
// with the given credential selection. appID is reported in the AWS
// user agent.
func NewRegistry(creds Credentials, appID string) *Registry {
	return &Registry{
		clients: make(map[ClientKey]LogsAPI),
		creds:   creds,
		build: func(ctx context.Context, region string, creds Credentials) (LogsAPI, error) {
			cfg, err := loadAWSConfig(ctx, region, creds, appID)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg), nil
		},
	}
}

// NewRegistryWithBuilder creates a registry with a custom builder.
// Used by tests to inject mocks per region.
func NewRegistryWithBuilder(build BuildFunc) *Registry {
	return &Registry{clients: make(map[ClientKey]LogsAPI), build: build}
}

// Get returns the client for region, constructing it on first use.
func (r *Registry) Get(ctx context.Context, region string) (LogsAPI, error) {
	key := r.creds.key(region)

	r.mu.Lock()
	client, ok := r.clients[key]
	r.mu.Unlock()
	if ok {
		return client, nil
	}

	// Construction runs outside the lock; an equivalent client built by a
	// concurrent caller is indistinguishable, so the race is harmless.
	client, err := r.build(ctx, region, r.creds)
	if err != nil {
		return nil, WrapQueryError(ErrRemoteAPI,
			fmt.Sprintf("failed to create CloudWatch Logs client for region %s: %v", region, err),
			"Check AWS credentials and the region name", err)
	}
	slog.Debug("cloudwatch logs client created", "region", region, "profile", key.Profile)

	r.mu.Lock()
	r.clients[key] = client
	r.mu.Unlock()
	return client, nil
}

func loadAWSConfig(ctx context.Context, region string, creds Credentials, appID string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithAppID(appID),
		config.WithHTTPClient(&http.Client{Timeout: DefaultAPITimeout}),
	}
	switch {
	case creds.Profile != "":
		opts = append(opts, config.WithSharedConfigProfile(creds.Profile))
	case creds.AccessKeyID != "" && creds.SecretAccessKey != "":
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}
