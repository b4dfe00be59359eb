package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool the gateway relies on.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
	now    func() time.Time
}

type memberRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

var (
	_ repository.Gateway           = (*Storage)(nil)
	_ repository.MemberRepository  = (*memberRepository)(nil)
	_ repository.PaymentRepository = (*paymentRepository)(nil)
)

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, now: time.Now}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Members() repository.MemberRepository {
	return &memberRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

// Deleting a member cascades to its payments.
func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS members (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL CHECK (name <> ''),
            phone TEXT NOT NULL DEFAULT '',
            plan TEXT NOT NULL,
            start_date DATE NOT NULL DEFAULT CURRENT_DATE,
            end_date DATE,
            CONSTRAINT members_end_after_start CHECK (end_date IS NULL OR end_date >= start_date)
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id BIGSERIAL PRIMARY KEY,
            member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
            amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
            payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            method TEXT
        )`,
		`CREATE INDEX IF NOT EXISTS idx_members_start_date ON members(start_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_member ON payments(member_id, payment_date DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// fail converts any driver error into a StoreError. noRows is the kind
// reported when the statement matched nothing.
func (s *Storage) fail(op string, err error, noRows error) error {
	kind := domainErrors.ErrStoreUnavailable
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		kind = noRows
	case errors.As(err, &pgErr):
		switch {
		case pgErr.Code == "23503":
			kind = domainErrors.ErrUnknownMember
		case pgErr.Code == "23505":
			kind = domainErrors.ErrAlreadyExists
		case pgErr.Code == "23502", pgErr.Code == "23514", strings.HasPrefix(pgErr.Code, "22"):
			kind = domainErrors.ErrInvalidInput
		}
	}
	if s.logger != nil {
		s.logger.Warn("store operation failed", slog.String("op", op), slog.String("error", err.Error()))
	}
	return domainErrors.NewStoreError(op, kind, err)
}

// --- MemberRepository implementation ---

const memberColumns = `id::text, name, phone, plan, start_date, end_date`

func scanMember(row pgx.Row) (*model.Member, error) {
	var (
		m     model.Member
		plan  string
		start time.Time
		end   *time.Time
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Phone, &plan, &start, &end); err != nil {
		return nil, err
	}
	m.Plan = model.Plan(plan)
	m.StartDate = model.DateOf(start)
	if end != nil {
		d := model.DateOf(*end)
		m.EndDate = &d
	}
	return &m, nil
}

func nullableDate(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func (r *memberRepository) Add(ctx context.Context, member model.NewMember) (*model.Member, error) {
	const query = `INSERT INTO members (name, phone, plan, start_date, end_date)
                   VALUES ($1, $2, $3, $4::text::date, $5::text::date)
                   RETURNING ` + memberColumns

	start := model.DateOf(r.storage.now())
	if member.StartDate != nil {
		start = *member.StartDate
	}

	row := r.storage.pool.QueryRow(ctx, query, member.Name, member.Phone, string(member.Plan), start.String(), nullableDate(member.EndDate))
	created, err := scanMember(row)
	if err != nil {
		return nil, r.storage.fail("add member", err, domainErrors.ErrStoreUnavailable)
	}
	return created, nil
}

func memberOrderClause(order model.MemberOrder) string {
	field := order.Field
	if !field.Valid() {
		field = model.MemberSortStartDate
	}
	dir := "ASC"
	if order.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, id %s", field, dir, dir)
}

func (r *memberRepository) List(ctx context.Context, order model.MemberOrder) ([]model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ` + memberOrderClause(order)
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, r.storage.fail("list members", err, domainErrors.ErrStoreUnavailable)
	}
	defer rows.Close()

	result := []model.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, r.storage.fail("list members", err, domainErrors.ErrStoreUnavailable)
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fail("list members", err, domainErrors.ErrStoreUnavailable)
	}
	return result, nil
}

func (r *memberRepository) Update(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) (*model.Member, error) {
	const query = `UPDATE members SET plan=$1, end_date=$2::text::date
                   WHERE id::text=$3
                   RETURNING ` + memberColumns

	row := r.storage.pool.QueryRow(ctx, query, string(plan), nullableDate(endDate), string(id))
	updated, err := scanMember(row)
	if err != nil {
		return nil, r.storage.fail("update member", err, domainErrors.ErrNotFound)
	}
	return updated, nil
}

func (r *memberRepository) Delete(ctx context.Context, id model.MemberID) (*model.Member, error) {
	const query = `DELETE FROM members WHERE id::text=$1 RETURNING ` + memberColumns

	deleted, err := scanMember(r.storage.pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		return nil, r.storage.fail("delete member", err, domainErrors.ErrNotFound)
	}
	return deleted, nil
}

// --- PaymentRepository implementation ---

const paymentColumns = `id::text, member_id::text, amount, payment_date, method`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var (
		p      model.Payment
		method *string
	)
	if err := row.Scan(&p.ID, &p.MemberID, &p.Amount, &p.PaymentDate, &method); err != nil {
		return nil, err
	}
	if method != nil {
		p.Method = *method
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]model.Payment, error) {
	defer rows.Close()

	result := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Add inserts only when the referenced member exists; otherwise nothing is
// returned and the call reports an unknown member.
func (r *paymentRepository) Add(ctx context.Context, payment model.NewPayment) (*model.Payment, error) {
	const query = `INSERT INTO payments (member_id, amount, payment_date, method)
                   SELECT m.id, $2::numeric, $3::text::timestamptz, $4::text
                   FROM members m WHERE m.id::text=$1
                   RETURNING ` + paymentColumns

	paidAt := r.storage.now()
	if payment.PaymentDate != nil {
		paidAt = *payment.PaymentDate
	}
	var method any
	if payment.Method != "" {
		method = payment.Method
	}

	row := r.storage.pool.QueryRow(ctx, query, string(payment.MemberID), payment.Amount, model.FormatTimestamp(paidAt), method)
	created, err := scanPayment(row)
	if err != nil {
		return nil, r.storage.fail("add payment", err, domainErrors.ErrUnknownMember)
	}
	return created, nil
}

func paymentOrderClause(order model.PaymentOrder) string {
	field := order.Field
	if !field.Valid() {
		field = model.PaymentSortPaymentDate
	}
	dir := "ASC"
	if order.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", field, dir, dir)
}

func (r *paymentRepository) List(ctx context.Context, order model.PaymentOrder) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ` + paymentOrderClause(order)
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, r.storage.fail("list payments", err, domainErrors.ErrStoreUnavailable)
	}
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, r.storage.fail("list payments", err, domainErrors.ErrStoreUnavailable)
	}
	return payments, nil
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID model.MemberID) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE member_id::text=$1 ` + paymentOrderClause(model.DefaultPaymentOrder())
	rows, err := r.storage.pool.Query(ctx, query, string(memberID))
	if err != nil {
		return nil, r.storage.fail("list member payments", err, domainErrors.ErrStoreUnavailable)
	}
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, r.storage.fail("list member payments", err, domainErrors.ErrStoreUnavailable)
	}
	return payments, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	const query = `DELETE FROM payments WHERE id::text=$1 RETURNING ` + paymentColumns

	deleted, err := scanPayment(r.storage.pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		return nil, r.storage.fail("delete payment", err, domainErrors.ErrNotFound)
	}
	return deleted, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
