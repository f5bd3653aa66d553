package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zionren/corkboard/pkg/cache"
	"github.com/zionren/corkboard/pkg/models"
	"github.com/zionren/corkboard/pkg/repository"
)

// ChangeNotifier receives pin change events after successful writes.
// Injected as an optional capability; a nil notifier disables live updates.
type ChangeNotifier interface {
	NotifyInsert(record interface{})
	NotifyUpdate(record, previous interface{})
	NotifyDelete(previous interface{})
}

type PinService interface {
	List(f repository.ListFilter) ([]models.Pin, error)
	All() ([]models.Pin, error)
	Create(req models.PinRequest) (models.Pin, error)
	Update(id string, req models.PinRequest) (models.Pin, error)
	Delete(id, authorID string) (models.Pin, error)
}

type pinService struct {
	repo     repository.PinRepository
	redis    *cache.Redis
	notifier ChangeNotifier
}

func NewPinService(repo repository.PinRepository, redis *cache.Redis, notifier ChangeNotifier) PinService {
	return &pinService{repo: repo, redis: redis, notifier: notifier}
}

func (s *pinService) List(f repository.ListFilter) ([]models.Pin, error) {
	cacheKey := fmt.Sprintf("pins:list:%s:%s:%s:rp%t", f.Category, f.Search, f.Sort, f.SearchRPName)
	var cached []models.Pin
	if s.redis.Get(cacheKey, &cached) {
		return cached, nil
	}

	pins, err := s.repo.List(f)
	if err != nil {
		return nil, err
	}

	s.redis.Set(cacheKey, pins, 15*time.Second)
	return pins, nil
}

// All returns every pin, newest first; the admin listing and the analytics
// pipeline both window/filter this set in memory.
func (s *pinService) All() ([]models.Pin, error) {
	var cached []models.Pin
	if s.redis.Get("pins:all", &cached) {
		return cached, nil
	}

	pins, err := s.repo.List(repository.ListFilter{Sort: models.SortNewest})
	if err != nil {
		return nil, err
	}

	s.redis.Set("pins:all", pins, 30*time.Second)
	return pins, nil
}

func (s *pinService) Create(req models.PinRequest) (models.Pin, error) {
	if err := req.Validate(); err != nil {
		return models.Pin{}, err
	}

	p, err := s.repo.Insert(req)
	if err != nil {
		return models.Pin{}, err
	}

	s.redis.DelPattern("pins:*")
	if s.notifier != nil {
		s.notifier.NotifyInsert(p)
	}
	return p, nil
}

func (s *pinService) Update(id string, req models.PinRequest) (models.Pin, error) {
	if err := req.Validate(); err != nil {
		return models.Pin{}, err
	}

	// Ownership is verified against the current row before writing, so a
	// vanished pin and a foreign pin fail differently.
	existing, err := s.repo.Get(id)
	if err == sql.ErrNoRows {
		return models.Pin{}, models.ErrNotFound
	}
	if err != nil {
		return models.Pin{}, err
	}
	if existing.AuthorID != req.AuthorID {
		return models.Pin{}, models.ErrUnauthorized
	}

	updated, err := s.repo.Update(id, req)
	if err == sql.ErrNoRows {
		return models.Pin{}, models.ErrNotFound
	}
	if err != nil {
		return models.Pin{}, err
	}

	s.redis.DelPattern("pins:*")
	if s.notifier != nil {
		s.notifier.NotifyUpdate(updated, existing)
	}
	return updated, nil
}

func (s *pinService) Delete(id, authorID string) (models.Pin, error) {
	existing, err := s.repo.Get(id)
	if err == sql.ErrNoRows {
		return models.Pin{}, models.ErrNotFound
	}
	if err != nil {
		return models.Pin{}, err
	}
	if existing.AuthorID != authorID {
		return models.Pin{}, models.ErrUnauthorized
	}

	deleted, err := s.repo.Delete(id, authorID)
	if err == sql.ErrNoRows {
		return models.Pin{}, models.ErrNotFound
	}
	if err != nil {
		return models.Pin{}, err
	}

	s.redis.DelPattern("pins:*")
	if s.notifier != nil {
		s.notifier.NotifyDelete(deleted)
	}
	return deleted, nil
}
