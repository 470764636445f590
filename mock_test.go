package vecquery

import (
	"context"

	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/vecquery/internal/usecase/health"
)

// Моки юзкейсов на функциональных полях.

type mockConfigUseCase struct {
	currentFn func() config.Config
	applyFn   func(ctx context.Context, p config.Params) error
}

func (m *mockConfigUseCase) Current() config.Config {
	if m.currentFn == nil {
		return config.Default()
	}
	return m.currentFn()
}

func (m *mockConfigUseCase) Apply(ctx context.Context, p config.Params) error {
	if m.applyFn == nil {
		return nil
	}
	return m.applyFn(ctx, p)
}

type mockSearchUseCase struct {
	searchFn func(ctx context.Context, query string, keywords ...string) ([]result.Result, error)
}

func (m *mockSearchUseCase) Search(ctx context.Context, query string, keywords ...string) ([]result.Result, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, query, keywords...)
}

type mockHealthUseCase struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUseCase) Check(ctx context.Context) healthuc.Report {
	if m.checkFn == nil {
		return healthuc.Report{Connected: true}
	}
	return m.checkFn(ctx)
}
