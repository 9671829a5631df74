package checks

import (
	"context"
	"fmt"

	"manifest-resolver/core/manifest"
	"manifest-resolver/core/storage"
)

// PublishedReport lists the snapshot artifacts found in object storage.
type PublishedReport struct {
	Locale  string                     `json:"locale"`
	Objects []manifest.PublishedObject `json:"objects"`
	Missing []string                   `json:"missing"`
}

// CheckPublished lists what is published for locale and reports which of the
// snapshot database and version file are missing.
func CheckPublished(ctx context.Context, client storage.Client, bucket string, cfg manifest.Config, locale string) (*PublishedReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	objects, err := manifest.ListPublished(ctx, client, bucket, cfg, locale)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(objects))
	for _, obj := range objects {
		found[obj.Key] = true
	}

	report := &PublishedReport{
		Locale:  locale,
		Objects: objects,
		Missing: []string{},
	}
	if report.Objects == nil {
		report.Objects = []manifest.PublishedObject{}
	}

	dbKey, versionKey := cfg.ObjectKeys(locale)
	for _, key := range []string{dbKey, versionKey} {
		if !found[key] {
			report.Missing = append(report.Missing, key)
		}
	}
	return report, nil
}
