// Package orm is a thin query-builder layer over the shared GORM handle.
// Repositories use it instead of touching database.DB directly, which keeps
// query timing metrics in one place.
package orm

import (
	"math"
	"time"

	"github.com/pethive/pethive/pkg/cache"
	"github.com/pethive/pethive/pkg/database"
	"github.com/pethive/pethive/pkg/metrics"
	"gorm.io/gorm"
)

// Pagination is the metadata block attached to paginated list responses.
// Pages is always ceil(Total/Limit).
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination normalizes page/limit and computes the page count.
func NewPagination(total int64, page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Gorm exposes the underlying handle for the few operations the builder
// does not cover (nested creates, transactions).
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, args...)}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

func (q *Query) Updates(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Updates(v).Error
}

func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(v, conds...).Error
}

// GetWithPagination runs the query with skip/take derived from page/limit
// and returns the pagination metadata alongside.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	return NewPagination(total, page, limit), err
}

// Cache runs the query through Redis with the given key and TTL.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.Get(dest); err != nil {
		return err
	}

	return cache.Set(key, dest, ttl)
}
