package platform

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRegistry_CachesPerRegion(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	builds := make(map[string]int)
	reg := NewRegistryWithBuilder(func(ctx context.Context, region string, creds Credentials) (LogsAPI, error) {
		mu.Lock()
		defer mu.Unlock()
		builds[region]++
		return NewMock(), nil
	})

	ctx := context.Background()
	first, err := reg.Get(ctx, "us-east-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := reg.Get(ctx, "us-east-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached client on the second call")
	}
	if _, err := reg.Get(ctx, "eu-west-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if builds["us-east-1"] != 1 {
		t.Errorf("us-east-1 built %d times, want 1", builds["us-east-1"])
	}
	if builds["eu-west-1"] != 1 {
		t.Errorf("eu-west-1 built %d times, want 1", builds["eu-west-1"])
	}
}

func TestRegistry_BuildFailureNotCached(t *testing.T) {
	t.Parallel()

	calls := 0
	reg := NewRegistryWithBuilder(func(ctx context.Context, region string, creds Credentials) (LogsAPI, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("no credentials")
		}
		return NewMock(), nil
	})

	ctx := context.Background()
	_, err := reg.Get(ctx, "us-east-1")
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if qe.Code != ErrRemoteAPI {
		t.Errorf("expected code %s, got %s", ErrRemoteAPI, qe.Code)
	}

	if _, err := reg.Get(ctx, "us-east-1"); err != nil {
		t.Fatalf("retry after failed build should succeed: %v", err)
	}
}
