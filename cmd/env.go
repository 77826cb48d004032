package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/clearcomp/claimdate/internal/config"
	"github.com/clearcomp/claimdate/internal/extract"
	"github.com/clearcomp/claimdate/internal/store"
	"github.com/clearcomp/claimdate/pkg/nlp"
)

// buildExtractor wires the pipeline from config: rules, AI client, anchor.
// limited controls whether AI calls go through the batch rate limiter.
func buildExtractor(cfg *config.Config, limited bool) (*extract.Extractor, error) {
	rules := extract.DefaultRules()
	if cfg.Extraction.RulesFile != "" {
		r, err := extract.LoadRules(cfg.Extraction.RulesFile)
		if err != nil {
			return nil, eris.Wrap(err, "load rules")
		}
		rules = r
	}
	if len(cfg.Extraction.CustomFieldKeys) > 0 {
		rules.CustomFieldKeys = cfg.Extraction.CustomFieldKeys
	}

	var client nlp.Client
	if cfg.Extraction.AIEnabled {
		if cfg.Anthropic.Key == "" {
			return nil, eris.New("extraction.ai_enabled is set but anthropic.key is empty")
		}
		client = nlp.Retried(
			nlp.NewSDKClient(cfg.Anthropic.Key, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens),
			nlp.DefaultRetryConfig(),
		)
		if limited && cfg.Batch.AIRatePerSec > 0 {
			client = nlp.RateLimited(client, rate.NewLimiter(rate.Limit(cfg.Batch.AIRatePerSec), 1))
		}
	}

	return extract.New(extract.Config{
		AIEnabled:      cfg.Extraction.AIEnabled,
		RelativeAnchor: extract.Anchor(cfg.Extraction.RelativeAnchor),
		AITimeout:      time.Duration(cfg.Extraction.AITimeoutSecs) * time.Second,
	}, rules, client), nil
}

// openStore opens the configured audit store and runs migrations.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	var st store.Store
	var err error

	switch cfg.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.DSN)
	default:
		st, err = store.NewSQLite(cfg.DSN)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "open %s store", cfg.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	zap.L().Debug("store ready", zap.String("driver", cfg.Driver))
	return st, nil
}
