// internal/domain/payment/entity.go
package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Intent record statuses
const (
	IntentStatusCreated  = "created"
	IntentStatusRefunded = "refunded"
)

// ErrRecordNotFound means no intent record exists for the given id
var ErrRecordNotFound = errors.New("payment intent record not found")

// IntentRecord is the persisted trace of a payment intent created through
// this service. Card data never appears here; only processor identifiers and
// amounts are stored.
type IntentRecord struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	PaymentIntentID string `json:"payment_intent_id" gorm:"uniqueIndex;not null"`
	Amount          int64  `json:"amount" gorm:"not null"`
	Currency        string `json:"currency" gorm:"not null"`
	Status          string `json:"status" gorm:"not null;default:'created'"`
	IdempotencyKey  string `json:"idempotency_key" gorm:"index"`
	RefundID        string `json:"refund_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for IntentRecord
func (IntentRecord) TableName() string {
	return "payment_intents"
}

// RecordStore persists intent records
type RecordStore interface {
	Create(ctx context.Context, record *IntentRecord) error
	MarkRefunded(ctx context.Context, paymentIntentID, refundID string) error
}

// GormRecordStore persists intent records in Postgres
type GormRecordStore struct {
	db *gorm.DB
}

// NewGormRecordStore creates a gorm-backed record store
func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

// Create inserts a new intent record
func (s *GormRecordStore) Create(ctx context.Context, record *IntentRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// MarkRefunded flags the intent record as refunded
func (s *GormRecordStore) MarkRefunded(ctx context.Context, paymentIntentID, refundID string) error {
	result := s.db.WithContext(ctx).Model(&IntentRecord{}).
		Where("payment_intent_id = ?", paymentIntentID).
		Updates(map[string]interface{}{
			"status":    IntentStatusRefunded,
			"refund_id": refundID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// MemoryRecordStore is an in-process record store used in tests
type MemoryRecordStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[string]*IntentRecord
}

// NewMemoryRecordStore creates an empty in-memory record store
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		nextID:  1,
		records: make(map[string]*IntentRecord),
	}
}

// Create inserts a new intent record
func (s *MemoryRecordStore) Create(ctx context.Context, record *IntentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	stored := *record
	s.records[record.PaymentIntentID] = &stored
	return nil
}

// MarkRefunded flags the intent record as refunded
func (s *MemoryRecordStore) MarkRefunded(ctx context.Context, paymentIntentID, refundID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[paymentIntentID]
	if !ok {
		return ErrRecordNotFound
	}
	record.Status = IntentStatusRefunded
	record.RefundID = refundID
	return nil
}

// Get returns the record for a payment intent id
func (s *MemoryRecordStore) Get(paymentIntentID string) (*IntentRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[paymentIntentID]
	if !ok {
		return nil, false
	}
	copied := *record
	return &copied, true
}
