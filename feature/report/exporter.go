package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"netbox-sync/core/reconcile"
	"netbox-sync/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Exporter writes reconcile plans to an S3 compatible bucket.
type Exporter struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewExporter creates an exporter writing below prefix in bucket.
func NewExporter(client storage.Client, bucket, prefix string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// ObjectName returns the object the plan with runID is stored as.
func (e *Exporter) ObjectName(runID string) string {
	return path.Join(e.prefix, runID+".json")
}

// Export uploads the plan as <prefix>/<run id>.json, creating the bucket
// when missing, and returns the object name.
func (e *Exporter) Export(ctx context.Context, plan *reconcile.ReconcilePlan) (string, error) {
	if plan == nil || plan.RunID == "" {
		return "", errors.New("plan without run id")
	}

	if err := e.ensureBucket(ctx); err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode plan: %w", err)
	}

	name := e.ObjectName(plan.RunID)
	_, err = e.client.PutObject(ctx, e.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	e.logger.Info("Plan exported", zap.String("bucket", e.bucket), zap.String("object", name))
	return name, nil
}

// Fetch downloads a previously exported plan.
func (e *Exporter) Fetch(ctx context.Context, runID string) (*reconcile.ReconcilePlan, error) {
	obj, err := e.client.GetObject(ctx, e.bucket, e.ObjectName(runID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download plan %s: %w", runID, err)
	}
	defer obj.Close()

	var plan reconcile.ReconcilePlan
	if err := json.NewDecoder(obj).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", runID, err)
	}
	return &plan, nil
}

// List returns the exported plans, newest first.
func (e *Exporter) List(ctx context.Context) ([]minio.ObjectInfo, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if e.prefix != "" {
		opts.Prefix = e.prefix + "/"
	}

	var objects []minio.ObjectInfo
	for obj := range e.client.ListObjects(ctx, e.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list plans: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			objects = append(objects, obj)
		}
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

// Retain deletes all but the keep newest plans. keep <= 0 keeps everything.
func (e *Exporter) Retain(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	objects, err := e.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(objects) <= keep {
		return 0, nil
	}
	stale := objects[keep:]

	ch := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		ch <- obj
	}
	close(ch)

	var errs []error
	for rerr := range e.client.RemoveObjects(ctx, e.bucket, ch, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("%s: %w", rerr.ObjectName, rerr.Err))
	}
	if len(errs) > 0 {
		return len(stale) - len(errs), fmt.Errorf("failed to remove plans: %w", errors.Join(errs...))
	}

	e.logger.Info("Old plans removed", zap.Int("count", len(stale)))
	return len(stale), nil
}

func (e *Exporter) ensureBucket(ctx context.Context) error {
	exists, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", e.bucket, err)
	}
	if exists {
		return nil
	}
	if err := e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", e.bucket, err)
	}
	e.logger.Info("Bucket created", zap.String("bucket", e.bucket))
	return nil
}
