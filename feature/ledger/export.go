package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"koin-ledger/core/storage"
	"koin-ledger/feature/account/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Exporter writes CSV snapshots of the dedup ledger to object storage.
type Exporter struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewExporter creates a ledger exporter.
func NewExporter(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Exporter {
	return &Exporter{db: db, client: client, bucket: bucket, logger: logger}
}

// Export dumps every donation order to a timestamped CSV object and returns
// the object name. The snapshot is an audit artifact; it never feeds back
// into reconciliation.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	exists, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	var orders []models.DonationOrder
	if err := e.db.WithContext(ctx).Order("created_at").Find(&orders).Error; err != nil {
		return "", fmt.Errorf("failed to load ledger: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"order_id", "user_id", "amount", "koin_amount", "created_at"})
	for _, order := range orders {
		_ = w.Write([]string{
			order.OrderID,
			order.UserID,
			strconv.FormatInt(order.AmountMinor, 10),
			strconv.FormatInt(order.KoinAmount, 10),
			order.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to encode ledger: %w", err)
	}

	objectName := fmt.Sprintf("exports/donation-orders-%s.csv", time.Now().UTC().Format("20060102T150405Z"))
	_, err = e.client.PutObject(ctx, e.bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	e.logger.Info("Ledger exported",
		zap.String("object", objectName),
		zap.Int("orders", len(orders)),
	)

	return objectName, nil
}
