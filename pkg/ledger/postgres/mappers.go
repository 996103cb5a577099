package postgres

import (
	"errors"
	"fmt"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/envelope"
	"github.com/sage-x-project/sage-did-go/pkg/ledger"
	"gorm.io/gorm"
)

func toRecord(id did.Identifier, m didDocumentModel) (ledger.Record, error) {
	status, err := did.ParseStatus(m.Status)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("record %s: %w", m.DID, err)
	}
	return ledger.Record{
		ID:            id,
		Document:      m.Document,
		Status:        status,
		TransactionID: m.TransactionID.String(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func toReceipt(id did.Identifier, m didTransactionModel) (ledger.Receipt, error) {
	status, err := did.ParseStatus(m.Status)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("transaction %s: %w", m.TransactionID, err)
	}
	action, ok := envelope.ParseAction(m.Action)
	if !ok {
		return ledger.Receipt{}, fmt.Errorf("transaction %s: unknown action %q", m.TransactionID, m.Action)
	}
	return ledger.Receipt{
		TransactionID: m.TransactionID.String(),
		ID:            id,
		Action:        action,
		Status:        status,
		RecordedAt:    m.RecordedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
