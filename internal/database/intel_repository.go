package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/logger"
)

// ErrNotFound is returned when a requested site has no stored result.
var ErrNotFound = errors.New("site result not found")

// IntelRepository persists crawl results, sync logs, and insights.
type IntelRepository struct {
	db  *sqlx.DB
	log logger.Interface
}

// NewIntelRepository creates a repository over an open connection.
func NewIntelRepository(db *sqlx.DB, log logger.Interface) *IntelRepository {
	return &IntelRepository{db: db, log: log.WithComponent("database")}
}

const upsertResultQuery = `
	INSERT INTO website_intelligence (
		name, code, url, color, is_self, reachable,
		performance_score, seo_score, accessibility_score, best_practices_score,
		first_contentful_paint, largest_contentful_paint, speed_index, is_mobile_friendly,
		page_title, meta_description,
		product_count, products, category_count, categories,
		price_min, price_max, price_avg,
		tech_stack, social_links, marketplace_presence, products_with_prices,
		has_ecommerce, has_blog, has_whatsapp, has_ssl, has_structured_data,
		image_count, word_count, internal_links, external_links,
		site_score, scanned_at
	) VALUES (
		:name, :code, :url, :color, :is_self, :reachable,
		:performance_score, :seo_score, :accessibility_score, :best_practices_score,
		:first_contentful_paint, :largest_contentful_paint, :speed_index, :is_mobile_friendly,
		:page_title, :meta_description,
		:product_count, :products, :category_count, :categories,
		:price_min, :price_max, :price_avg,
		:tech_stack, :social_links, :marketplace_presence, :products_with_prices,
		:has_ecommerce, :has_blog, :has_whatsapp, :has_ssl, :has_structured_data,
		:image_count, :word_count, :internal_links, :external_links,
		:site_score, :scanned_at
	)
	ON CONFLICT (code) DO UPDATE SET
		name = EXCLUDED.name,
		url = EXCLUDED.url,
		color = EXCLUDED.color,
		is_self = EXCLUDED.is_self,
		reachable = EXCLUDED.reachable,
		performance_score = EXCLUDED.performance_score,
		seo_score = EXCLUDED.seo_score,
		accessibility_score = EXCLUDED.accessibility_score,
		best_practices_score = EXCLUDED.best_practices_score,
		first_contentful_paint = EXCLUDED.first_contentful_paint,
		largest_contentful_paint = EXCLUDED.largest_contentful_paint,
		speed_index = EXCLUDED.speed_index,
		is_mobile_friendly = EXCLUDED.is_mobile_friendly,
		page_title = EXCLUDED.page_title,
		meta_description = EXCLUDED.meta_description,
		product_count = EXCLUDED.product_count,
		products = EXCLUDED.products,
		category_count = EXCLUDED.category_count,
		categories = EXCLUDED.categories,
		price_min = EXCLUDED.price_min,
		price_max = EXCLUDED.price_max,
		price_avg = EXCLUDED.price_avg,
		tech_stack = EXCLUDED.tech_stack,
		social_links = EXCLUDED.social_links,
		marketplace_presence = EXCLUDED.marketplace_presence,
		products_with_prices = EXCLUDED.products_with_prices,
		has_ecommerce = EXCLUDED.has_ecommerce,
		has_blog = EXCLUDED.has_blog,
		has_whatsapp = EXCLUDED.has_whatsapp,
		has_ssl = EXCLUDED.has_ssl,
		has_structured_data = EXCLUDED.has_structured_data,
		image_count = EXCLUDED.image_count,
		word_count = EXCLUDED.word_count,
		internal_links = EXCLUDED.internal_links,
		external_links = EXCLUDED.external_links,
		site_score = EXCLUDED.site_score,
		scanned_at = EXCLUDED.scanned_at`

// UpsertResult writes one site's latest crawl row, keyed by code.
func (r *IntelRepository) UpsertResult(ctx context.Context, record *domain.IntelRecord) error {
	if _, err := r.db.NamedExecContext(ctx, upsertResultQuery, record); err != nil {
		return fmt.Errorf("failed to upsert result for %s: %w", record.Code, err)
	}
	r.log.Debug("result upserted", "code", record.Code, "score", record.SiteScore)
	return nil
}

// InsertSyncLog appends one run to the sync audit trail.
func (r *IntelRepository) InsertSyncLog(ctx context.Context, entry *domain.SyncLog) error {
	query := `
		INSERT INTO intel_sync_log (run_id, sync_type, status, sites_synced, errors, duration_ms, synced_at)
		VALUES (:run_id, :sync_type, :status, :sites_synced, :errors, :duration_ms, :synced_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to insert sync log: %w", err)
	}
	return nil
}

// InsertInsight stores one generated insight.
func (r *IntelRepository) InsertInsight(ctx context.Context, insight *domain.Insight) error {
	query := `
		INSERT INTO intel_insights (type, priority, title, body, source, created_at)
		VALUES (:type, :priority, :title, :body, :source, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, insight); err != nil {
		return fmt.Errorf("failed to insert insight: %w", err)
	}
	return nil
}

const selectResultColumns = `
	name, code, url, color, is_self, reachable,
	performance_score, seo_score, accessibility_score, best_practices_score,
	first_contentful_paint, largest_contentful_paint, speed_index, is_mobile_friendly,
	page_title, meta_description,
	product_count, products, category_count, categories,
	price_min, price_max, price_avg,
	tech_stack, social_links, marketplace_presence, products_with_prices,
	has_ecommerce, has_blog, has_whatsapp, has_ssl, has_structured_data,
	image_count, word_count, internal_links, external_links,
	site_score, scanned_at`

// GetByCode returns the stored result for one site.
func (r *IntelRepository) GetByCode(ctx context.Context, code string) (*domain.IntelRecord, error) {
	var record domain.IntelRecord
	query := `SELECT` + selectResultColumns + ` FROM website_intelligence WHERE code = $1`
	if err := r.db.GetContext(ctx, &record, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get result for %s: %w", code, err)
	}
	return &record, nil
}

// ListResults returns every stored result, most recently scanned first.
func (r *IntelRepository) ListResults(ctx context.Context) ([]domain.IntelRecord, error) {
	var records []domain.IntelRecord
	query := `SELECT` + selectResultColumns + ` FROM website_intelligence ORDER BY scanned_at DESC`
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return records, nil
}
