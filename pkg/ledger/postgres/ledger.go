package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"gorm.io/gorm"
)

// Ledger stores the current document of every identifier in did_documents
// and appends every accepted submission to did_transactions
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLedger wraps an open connection. Run RunMigrations first.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Lookup returns the current record for id
func (l *Ledger) Lookup(ctx context.Context, id did.Identifier) (ledger.Record, error) {
	var rec didDocumentModel
	if err := l.db.WithContext(ctx).Where("did = ?", id.String()).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.Record{}, ledger.ErrNotFound
		}
		return ledger.Record{}, fmt.Errorf("lookup %s: %w", id, err)
	}
	return toRecord(id, rec)
}

// Submit records env in one transaction
func (l *Ledger) Submit(ctx context.Context, env *envelope.Envelope, status did.Status) (ledger.Receipt, error) {
	id := env.TargetID()
	action := env.Instruction().Action
	raw := env.RawDocument()
	now := l.now()
	txID := uuid.New()

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if action == envelope.ActionCreate {
			rec := didDocumentModel{
				DID:           id.String(),
				Document:      raw,
				Status:        status.String(),
				TransactionID: txID,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Create(&rec).Error; err != nil {
				if isUniqueViolation(err) {
					return ledger.ErrConflict
				}
				return err
			}
		} else {
			res := tx.Model(&didDocumentModel{}).
				Where("did = ?", id.String()).
				Updates(map[string]any{
					"document":       raw,
					"status":         status.String(),
					"transaction_id": txID,
					"updated_at":     now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ledger.ErrNotFound
			}
		}

		return tx.Create(&didTransactionModel{
			TransactionID: txID,
			DID:           id.String(),
			Action:        action.Wire(),
			Status:        status.String(),
			Document:      raw,
			RecordedAt:    now,
		}).Error
	})
	if err != nil {
		slog.Default().ErrorContext(ctx, "ledger submit failed",
			"module", "ledger",
			"layer", "adapter",
			"operation", "submit",
			"outcome", "failure",
			"did", id.String(),
			"error", err,
		)
		if errors.Is(err, ledger.ErrConflict) || errors.Is(err, ledger.ErrNotFound) {
			return ledger.Receipt{}, err
		}
		return ledger.Receipt{}, fmt.Errorf("submit %s: %w", id, err)
	}

	return ledger.Receipt{
		TransactionID: txID.String(),
		ID:            id,
		Action:        action,
		Status:        status,
		RecordedAt:    now,
	}, nil
}

// History returns every recorded transaction of id, oldest first
func (l *Ledger) History(ctx context.Context, id did.Identifier) ([]ledger.Receipt, error) {
	var rows []didTransactionModel
	if err := l.db.WithContext(ctx).
		Where("did = ?", id.String()).
		Order("recorded_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("history %s: %w", id, err)
	}

	out := make([]ledger.Receipt, 0, len(rows))
	for _, row := range rows {
		receipt, err := toReceipt(id, row)
		if err != nil {
			return nil, err
		}
		out = append(out, receipt)
	}
	return out, nil
}
