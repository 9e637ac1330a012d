package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/models"
	"github.com/beadloom/storefront/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.CustomRequest{},
		&models.Testimonial{},
		&models.NewsletterSubscriber{},
		&models.GalleryImage{},
		&models.WebhookEvent{},
	))

	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(newTestDB(t))
}

func seedProduct(t *testing.T, r *repo.GormRepo, slug, price string, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:          "Product " + slug,
		Slug:          slug,
		Price:         decimal.RequireFromString(price),
		Images:        models.StringList{"https://img.example/" + slug + ".jpg"},
		StockQuantity: stock,
		IsAvailable:   true,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

type recordedEvent struct {
	Topic string
	Key   string
	Event any
}

// recordingPublisher stands in for the kafka producer.
type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *recordingPublisher) all() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]recordedEvent, len(p.events))
	copy(out, p.events)
	return out
}
