package app

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/transparency-backend/internal/clients/aigateway"
	"github.com/yungbote/transparency-backend/internal/clients/gcp"
	"github.com/yungbote/transparency-backend/internal/clients/redis"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
	"github.com/yungbote/transparency-backend/internal/render"
)

type Clients struct {
	Gateway      aigateway.Gateway
	Locker       redis.ProductLocker
	ReportBucket gcp.ReportBucket
	Renderer     render.Renderer
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// AI gateway
	var gateway aigateway.Gateway
	switch cfg.AI.Mode {
	case AIModeHeuristic:
		log.Info("Using heuristic AI gateway")
		gateway = aigateway.NewHeuristicGateway()
	default:
		g, err := aigateway.NewHTTPGateway(aigateway.Config{
			BaseURL:    cfg.AI.URL,
			Timeout:    seconds(cfg.AI.TimeoutSeconds),
			MaxRetries: cfg.AI.MaxRetries,
			Backoff:    250 * time.Millisecond,
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init ai gateway: %w", err)
		}
		gateway = g
	}

	// Redis
	locker := redis.NewNoopLocker()
	if cfg.Redis.Addr != "" {
		l, err := redis.NewProductLocker(redis.LockConfig{
			Addr: cfg.Redis.Addr,
			TTL:  seconds(cfg.Redis.LockTTLSeconds),
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init ingestion lock: %w", err)
		}
		locker = l
	}

	// Gcs
	var bucket gcp.ReportBucket
	if cfg.Storage.ReportBucket != "" {
		b, err := gcp.NewReportBucket(ctx, gcp.BucketConfig{
			Name:      cfg.Storage.ReportBucket,
			CDNDomain: cfg.Storage.CDNDomain,
		}, log, gcp.ClientOptionsFromEnv()...)
		if err != nil {
			_ = locker.Close()
			return Clients{}, fmt.Errorf("init report bucket: %w", err)
		}
		bucket = b
	}

	return Clients{
		Gateway:      gateway,
		Locker:       locker,
		ReportBucket: bucket,
		Renderer:     render.NewPDFRenderer(),
	}, nil
}

func (c Clients) Close(log *logger.Logger) {
	if c.Locker != nil {
		if err := c.Locker.Close(); err != nil {
			log.Warn("Closing ingestion lock failed", "error", err)
		}
	}
	if c.ReportBucket != nil {
		if err := c.ReportBucket.Close(); err != nil {
			log.Warn("Closing report bucket failed", "error", err)
		}
	}
}
