package services

import (
	"crypto/subtle"
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zionren/corkboard/pkg/analytics"
	"github.com/zionren/corkboard/pkg/board"
	"github.com/zionren/corkboard/pkg/cache"
	"github.com/zionren/corkboard/pkg/models"
	"github.com/zionren/corkboard/pkg/repository"
)

type AdminService interface {
	Login(username, password string) bool
	ListPins(spec models.FilterSpec) ([]models.Pin, error)
	DeletePin(id string) (models.Pin, error)
	DeletePins(ids []string) ([]models.Pin, error)
	Analytics(win analytics.Window, now time.Time) (analytics.Report, error)
}

type adminService struct {
	pins     PinService
	repo     repository.PinRepository
	redis    *cache.Redis
	notifier ChangeNotifier

	username string
	password string
}

func NewAdminService(pins PinService, repo repository.PinRepository, redis *cache.Redis, notifier ChangeNotifier) AdminService {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "dev-admin-secret"
	}

	return &adminService{
		pins:     pins,
		repo:     repo,
		redis:    redis,
		notifier: notifier,
		username: username,
		password: password,
	}
}

// Login checks the credentials against the two configured secrets and
// returns only a success flag; no session or token is issued.
func (s *adminService) Login(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	if strings.HasPrefix(s.password, "$2") {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	return userOK && passOK
}

// ListPins runs the in-memory filter/sort pipeline over the full pin set.
// The admin view always matches rp_name in text searches.
func (s *adminService) ListPins(spec models.FilterSpec) ([]models.Pin, error) {
	pins, err := s.pins.All()
	if err != nil {
		return nil, err
	}
	spec.SearchRPName = true
	return board.Apply(pins, spec), nil
}

func (s *adminService) DeletePin(id string) (models.Pin, error) {
	deleted, err := s.repo.AdminDelete(id)
	if err == sql.ErrNoRows {
		return models.Pin{}, models.ErrNotFound
	}
	if err != nil {
		return models.Pin{}, err
	}

	s.invalidate()
	if s.notifier != nil {
		s.notifier.NotifyDelete(deleted)
	}
	return deleted, nil
}

// DeletePins removes the given pins with no author check.
func (s *adminService) DeletePins(ids []string) ([]models.Pin, error) {
	if len(ids) == 0 {
		return nil, &models.ValidationError{Field: "ids", Reason: "must not be empty"}
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, &models.ValidationError{Field: "ids", Reason: "must all be valid UUIDs"}
		}
	}

	deleted, err := s.repo.DeleteMany(ids)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	if s.notifier != nil {
		for _, p := range deleted {
			s.notifier.NotifyDelete(p)
		}
	}
	return deleted, nil
}

func (s *adminService) Analytics(win analytics.Window, now time.Time) (analytics.Report, error) {
	pins, err := s.pins.All()
	if err != nil {
		return analytics.Report{}, err
	}
	return analytics.Aggregate(pins, win, now), nil
}

func (s *adminService) invalidate() {
	s.redis.DelPattern("pins:*")
}
