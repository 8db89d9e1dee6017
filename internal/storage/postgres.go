package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"dentalsite/internal/catalog"
	"dentalsite/internal/config"
	"dentalsite/internal/forms"
)

const (
	servicesCacheTTL = 10 * time.Minute
	statsCacheKey    = "lead_stats"
	statsCacheTTL    = time.Hour
)

// Cache is the read-through cache in front of Postgres.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

var (
	_ catalog.Source       = (*PostgresStorage)(nil)
	_ forms.LeadRepository = (*PostgresStorage)(nil)
)

type PostgresStorage struct {
	db     *sqlx.DB
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

type serviceRow struct {
	ID      string `db:"id"`
	Slug    string `db:"slug"`
	Title   string `db:"title"`
	IconRef string `db:"icon_ref"`
}

type leadRow struct {
	ID           string    `db:"id"`
	Kind         string    `db:"kind"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Email        string    `db:"email"`
	Message      string    `db:"message"`
	Service      string    `db:"service"`
	ServiceSlug  string    `db:"service_slug"`
	Quantity     int       `db:"quantity"`
	MaterialType string    `db:"material_type"`
	PriceMin     int64     `db:"price_min"`
	PriceMax     int64     `db:"price_max"`
	ClientID     string    `db:"client_id"`
	Locale       string    `db:"locale"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r leadRow) lead() forms.Lead {
	return forms.Lead{
		ID:           r.ID,
		Kind:         forms.Kind(r.Kind),
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		Message:      r.Message,
		Service:      r.Service,
		ServiceSlug:  r.ServiceSlug,
		Quantity:     r.Quantity,
		MaterialType: r.MaterialType,
		PriceMin:     r.PriceMin,
		PriceMax:     r.PriceMax,
		ClientID:     r.ClientID,
		Locale:       r.Locale,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

func newLeadRow(l forms.Lead) leadRow {
	return leadRow{
		ID:           l.ID,
		Kind:         string(l.Kind),
		Name:         l.Name,
		Phone:        l.Phone,
		Email:        l.Email,
		Message:      l.Message,
		Service:      l.Service,
		ServiceSlug:  l.ServiceSlug,
		Quantity:     l.Quantity,
		MaterialType: l.MaterialType,
		PriceMin:     l.PriceMin,
		PriceMax:     l.PriceMax,
		ClientID:     l.ClientID,
		Locale:       l.Locale,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
	}
}

// DSN builds the lib/pq connection string.
func DSN(cfg config.Database) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// NewPostgresStorage connects with exponential backoff. cache may be nil.
func NewPostgresStorage(ctx context.Context, cfg config.Database, cache Cache, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))

	err := backoff.RetryNotify(
		func() error {
			conn, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg))
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := conn.PingContext(ctx); err != nil {
				_ = conn.Close()
				return fmt.Errorf("ping: %w", err)
			}
			db = conn
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return NewWithDB(db, cache, logger), nil
}

// NewWithDB wraps an existing connection.
func NewWithDB(db *sqlx.DB, cache Cache, logger *zap.Logger) *PostgresStorage {
	return &PostgresStorage{db: db, cache: cache, logger: logger, now: time.Now}
}

func (s *PostgresStorage) DB() *sqlx.DB {
	return s.db
}

// Services returns the published services of a locale in display order.
func (s *PostgresStorage) Services(ctx context.Context, locale string) ([]catalog.Service, error) {
	const operation = "storage.Services"

	cacheKey := fmt.Sprintf("services:%s", locale)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var services []catalog.Service
			if err := json.Unmarshal(cached, &services); err == nil {
				return services, nil
			}
		}
	}

	const query = `
        SELECT id, slug, title, icon_ref
        FROM services
        WHERE locale = $1 AND published = TRUE
        ORDER BY position, id
    `

	var rows []serviceRow
	if err := s.db.SelectContext(ctx, &rows, query, locale); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	services := make([]catalog.Service, 0, len(rows))
	for _, r := range rows {
		services = append(services, catalog.Service{
			ID:      r.ID,
			Slug:    r.Slug,
			Title:   r.Title,
			IconRef: r.IconRef,
		})
	}

	if s.cache != nil && len(services) > 0 {
		if data, err := json.Marshal(services); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, servicesCacheTTL); err != nil {
				s.logger.Debug("Failed to cache services", zap.Error(err))
			}
		}
	}

	return services, nil
}

func (s *PostgresStorage) SaveLead(ctx context.Context, lead forms.Lead) error {
	const operation = "storage.SaveLead"

	const query = `
        INSERT INTO leads (
            id, kind, name, phone, email, message, service, service_slug,
            quantity, material_type, price_min, price_max, client_id,
            locale, status, created_at
        ) VALUES (
            :id, :kind, :name, :phone, :email, :message, :service, :service_slug,
            :quantity, :material_type, :price_min, :price_max, :client_id,
            :locale, :status, :created_at
        )
    `

	if _, err := s.db.NamedExecContext(ctx, query, newLeadRow(lead)); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, statsCacheKeyFor(s.now())); err != nil {
			s.logger.Debug("Failed to invalidate lead stats", zap.Error(err))
		}
	}
	return nil
}

// ListLeads returns leads newest first. A non-positive limit returns all.
func (s *PostgresStorage) ListLeads(ctx context.Context, limit int) ([]forms.Lead, error) {
	const operation = "storage.ListLeads"

	query := `SELECT * FROM leads ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	var rows []leadRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	leads := make([]forms.Lead, 0, len(rows))
	for _, r := range rows {
		leads = append(leads, r.lead())
	}
	return leads, nil
}

type LeadStatistics struct {
	TotalLeads    int            `json:"total_leads"`
	TodayLeads    int            `json:"today_leads"`
	WeekLeads     int            `json:"week_leads"`
	MonthLeads    int            `json:"month_leads"`
	EstimateValue int64          `json:"estimate_value"`
	KindCounts    map[string]int `json:"kind_counts"`
	StatusCounts  map[string]int `json:"status_counts"`
}

// LeadStatistics counts leads. Today, week and month are measured from the
// start of the current UTC day, and the cached copy is keyed by that day.
func (s *PostgresStorage) LeadStatistics(ctx context.Context) (*LeadStatistics, error) {
	const operation = "storage.LeadStatistics"

	now := s.now()
	cacheKey := statsCacheKeyFor(now)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var stats LeadStatistics
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	var totals struct {
		Total         int   `db:"total"`
		Today         int   `db:"today"`
		Week          int   `db:"week"`
		Month         int   `db:"month"`
		EstimateValue int64 `db:"estimate_value"`
	}
	err := s.db.GetContext(ctx, &totals, `
        SELECT
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE created_at >= $1) AS today,
            COUNT(*) FILTER (WHERE created_at >= $1::timestamptz - INTERVAL '7 days') AS week,
            COUNT(*) FILTER (WHERE created_at >= $1::timestamptz - INTERVAL '30 days') AS month,
            COALESCE(SUM(price_max) FILTER (WHERE kind = 'estimate'), 0) AS estimate_value
        FROM leads
    `, startOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("%s: totals: %w", operation, err)
	}

	stats := &LeadStatistics{
		TotalLeads:    totals.Total,
		TodayLeads:    totals.Today,
		WeekLeads:     totals.Week,
		MonthLeads:    totals.Month,
		EstimateValue: totals.EstimateValue,
	}

	if stats.KindCounts, err = s.countBy(ctx, "kind"); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if stats.StatusCounts, err = s.countBy(ctx, "status"); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, statsTTL(now)); err != nil {
				s.logger.Debug("Failed to cache lead stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func statsCacheKeyFor(t time.Time) string {
	return statsCacheKey + ":" + startOfDay(t).Format(time.DateOnly)
}

// statsTTL never lets a cached copy outlive the day it was counted on.
func statsTTL(now time.Time) time.Duration {
	return min(statsCacheTTL, startOfDay(now).AddDate(0, 0, 1).Sub(now))
}

// countBy groups leads by a fixed column name. column is never user input.
func (s *PostgresStorage) countBy(ctx context.Context, column string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM leads GROUP BY %s`, column, column))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s counts: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
