package cmd

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"go.uber.org/zap"

	"github.com/s3v-cli/s3v/pkg/core"
	"github.com/s3v-cli/s3v/pkg/dlogger"
	"github.com/s3v-cli/s3v/pkg/errors"
	"github.com/s3v-cli/s3v/pkg/storage"
	"github.com/s3v-cli/s3v/pkg/storage/sthree"
	"github.com/s3v-cli/s3v/pkg/storage/status"
)

func getLogger() *zap.Logger {
	// the flag binding makes viper resolve precedence already: an explicit
	// --loglevel wins over the config file, the flag default comes last
	loglevel := config.Loglevel
	if loglevel == "" {
		loglevel = s3vFlags.loglevel
	}
	l, err := dlogger.GetLogger(loglevel)
	if err != nil {
		wrapFatalln("set up logging", err)
		return nil
	}
	return l
}

func makeStore(bucket string) storage.VersionedStore {
	cfg := aws.NewConfig()
	if region := firstOf(s3vFlags.region, config.Region); region != "" {
		cfg = cfg.WithRegion(region)
	}
	if endpoint := firstOf(s3vFlags.endpoint, config.Endpoint); endpoint != "" {
		// S3 compatibles rarely support virtual-host addressing
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}
	return sthree.New(
		sthree.Bucket(bucket),
		sthree.Profile(firstOf(s3vFlags.profile, config.Profile)),
		sthree.AWSConfig(cfg),
		sthree.Logger(getLogger()),
	)
}

func opOptions() []core.Option {
	opts := []core.Option{core.WithLogger(getLogger())}
	if concurrency := s3vFlags.concurrency; concurrency > 0 {
		opts = append(opts, core.WithMaxParallel(concurrency))
	} else if config.Concurrency > 0 {
		opts = append(opts, core.WithMaxParallel(config.Concurrency))
	}
	return opts
}

// requireVersioning fails early when the bucket reports versioning off.
// Stores without the check (or callers without the permission) pass.
func requireVersioning(ctx context.Context, store storage.VersionedStore) {
	checker, ok := store.(interface{ CheckVersioning(context.Context) error })
	if !ok {
		return
	}
	err := checker.CheckVersioning(ctx)
	if err == nil || !errors.Is(err, status.ErrVersioningDisabled) {
		return
	}
	wrapFatalln("this tool needs a versioned bucket", err)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
