package postgres

import (
	"time"

	"github.com/google/uuid"
)

type didDocumentModel struct {
	DID           string    `gorm:"column:did;primaryKey"`
	Document      []byte    `gorm:"column:document;type:bytea"`
	Status        string    `gorm:"column:status"`
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (didDocumentModel) TableName() string { return "did_documents" }

type didTransactionModel struct {
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid;primaryKey"`
	DID           string    `gorm:"column:did"`
	Action        string    `gorm:"column:action"`
	Status        string    `gorm:"column:status"`
	Document      []byte    `gorm:"column:document;type:bytea"`
	RecordedAt    time.Time `gorm:"column:recorded_at"`
}

func (didTransactionModel) TableName() string { return "did_transactions" }
