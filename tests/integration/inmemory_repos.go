package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// In-memory implementations of the storage ports, mirroring the SQL repos'
// concurrency behavior: insert-once on key conflict for payments and
// refunds, and a process-wide lock standing in for the payment row lock so
// refund flows serialize the way they do on PostgreSQL.

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu      sync.RWMutex
	records map[string]*domain.PaymentTransaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{records: make(map[string]*domain.PaymentTransaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, record *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.records[record.IdempotencyKey]; ok {
		c := *stored
		return &c, nil
	}
	c := *record
	r.records[record.IdempotencyKey] = &c
	return record, nil
}

func (r *inMemoryTransactionRepo) GetByKey(ctx context.Context, idempotencyKey string) (*domain.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.records[idempotencyKey]
	if !ok {
		return nil, nil
	}
	c := *stored
	return &c, nil
}

func (r *inMemoryTransactionRepo) GetByKeyForUpdate(ctx context.Context, tx pgx.Tx, idempotencyKey string) (*domain.PaymentTransaction, error) {
	return r.GetByKey(ctx, idempotencyKey)
}

func (r *inMemoryTransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, idempotencyKey string, status domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[idempotencyKey]
	if !ok {
		return fmt.Errorf("payment transaction not found: %s", idempotencyKey)
	}
	stored.Status = status
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryTransactionRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// --- In-Memory Refund Repo ---

type inMemoryRefundRepo struct {
	mu      sync.RWMutex
	records map[string]*domain.RefundRecord
}

func newInMemoryRefundRepo() *inMemoryRefundRepo {
	return &inMemoryRefundRepo{records: make(map[string]*domain.RefundRecord)}
}

func (r *inMemoryRefundRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.RefundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.RefundIdempotencyKey]; ok {
		return fmt.Errorf("duplicate refund key: %s", record.RefundIdempotencyKey)
	}
	c := *record
	r.records[record.RefundIdempotencyKey] = &c
	return nil
}

func (r *inMemoryRefundRepo) GetByKey(ctx context.Context, refundIdempotencyKey string) (*domain.RefundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.records[refundIdempotencyKey]
	if !ok {
		return nil, nil
	}
	c := *stored
	return &c, nil
}

func (r *inMemoryRefundRepo) SumSuccessful(ctx context.Context, tx pgx.Tx, paymentIdempotencyKey string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := decimal.Zero
	for _, rec := range r.records {
		if rec.PaymentIdempotencyKey == paymentIdempotencyKey && rec.Status == domain.RefundStatusSuccess {
			sum = sum.Add(rec.Amount)
		}
	}
	return sum, nil
}

func (r *inMemoryRefundRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// --- In-Memory Event Repo ---

type inMemoryEventRepo struct {
	mu     sync.RWMutex
	events map[string]*domain.PaymentEvent
}

func newInMemoryEventRepo() *inMemoryEventRepo {
	return &inMemoryEventRepo{events: make(map[string]*domain.PaymentEvent)}
}

func (r *inMemoryEventRepo) Insert(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.EventID]; ok {
		return false, nil
	}
	c := *event
	r.events[event.EventID] = &c
	return true, nil
}

func (r *inMemoryEventRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// --- In-Memory Alert Repo ---

type inMemoryAlertRepo struct {
	mu     sync.RWMutex
	alerts []*domain.RiskAlert
}

func newInMemoryAlertRepo() *inMemoryAlertRepo {
	return &inMemoryAlertRepo{}
}

func (r *inMemoryAlertRepo) Insert(ctx context.Context, alert *domain.RiskAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *alert
	r.alerts = append(r.alerts, &c)
	return nil
}

func (r *inMemoryAlertRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alerts)
}

// --- Locking Transactor ---

// lockingTransactor serializes whole transactions behind one mutex. Coarser
// than the per-row lock the SQL transactor provides, but it preserves the
// property refunds rely on: between Begin and Commit, nobody else reads or
// writes the refund tables.
type lockingTransactor struct {
	mu sync.Mutex
}

func newLockingTransactor() *lockingTransactor {
	return &lockingTransactor{}
}

func (t *lockingTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: t.mu.Unlock}, nil
}

// memTx is a pgx.Tx that only tracks the transaction lock. Commit and
// Rollback both release it; whichever runs first wins, matching pgx where
// Rollback after Commit is a no-op error.
type memTx struct {
	release func()
	once    sync.Once
}

func (t *memTx) close() {
	t.once.Do(t.release)
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.close(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.close(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }
