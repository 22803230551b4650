package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

// ExpiryWindowDays is how far ahead the expiry scan looks by default.
const ExpiryWindowDays = 30

const expiryScanLimit = 10000

// ExpiryReport summarizes one expiry scan.
type ExpiryReport struct {
	Licenses        int   `json:"licenses"`
	Warranties      int   `json:"warranties"`
	Notified        int   `json:"notified"`
	StatusesUpdated int64 `json:"statuses_updated"`
}

// ExpiryService warns owners about licenses and warranties that are about
// to lapse and keeps their statuses current.
type ExpiryService struct {
	reports          *repository.ReportRepository
	expiryRepo       *repository.ExpiryRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	notifications    *NotificationService
	windowDays       int
	logger           *zap.Logger
}

// NewExpiryService creates a new expiry scan service
func NewExpiryService(
	reports *repository.ReportRepository,
	expiryRepo *repository.ExpiryRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *ExpiryService {
	return &ExpiryService{
		reports:          reports,
		expiryRepo:       expiryRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifications:    notifications,
		windowDays:       ExpiryWindowDays,
		logger:           logger,
	}
}

// WithWindow changes how many days ahead the scan looks. Non-positive
// values keep the default.
func (s *ExpiryService) WithWindow(days int) *ExpiryService {
	if days > 0 {
		s.windowDays = days
	}
	return s
}

type expiryNotice struct {
	kind    domain.NotificationType
	title   string
	message string
	link    string
}

// Scan notifies every active owner once per window about each license and
// warranty item expiring within the window, then updates statuses.
func (s *ExpiryService) Scan(ctx context.Context) (*ExpiryReport, error) {
	now := repository.Now()
	today := now.Format(repository.DateLayout)
	horizon := now.AddDate(0, 0, s.windowDays).Format(repository.DateLayout)
	since := now.AddDate(0, 0, -s.windowDays).Format(repository.DateLayout)

	licenses, err := s.reports.Licenses(ctx, repository.LicenseFilter{
		ExpiresFrom: today,
		ExpiresTo:   horizon,
		Page:        repository.Page{Limit: expiryScanLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring licenses: %w", err)
	}
	warranties, err := s.reports.Warranties(ctx, repository.WarrantyFilter{
		EndsBy: horizon,
		Page:   repository.Page{Limit: expiryScanLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring warranties: %w", err)
	}

	report := &ExpiryReport{Licenses: len(licenses)}
	var notices []expiryNotice
	for _, l := range licenses {
		notices = append(notices, expiryNotice{
			kind:    domain.NotificationTypeLicense,
			title:   "License expiring: " + l.LicenseName,
			message: fmt.Sprintf("%s expires on %s.", l.LicenseName, l.ExpirationDate),
			link:    "/licenses",
		})
	}
	for _, w := range warranties {
		if w.WarrantyEnd < today || w.Status == domain.WarrantyClaimed {
			continue
		}
		report.Warranties++
		notices = append(notices, expiryNotice{
			kind:    domain.NotificationTypeWarranty,
			title:   fmt.Sprintf("Warranty expiring: %s (%s)", w.ItemDescription, w.JobName),
			message: fmt.Sprintf("Warranty for %s on %s ends %s.", w.ItemDescription, w.JobName, w.WarrantyEnd),
			link:    "/warranty",
		})
	}

	if len(notices) > 0 {
		owners, err := s.userRepo.ListActiveByRole(ctx, domain.RoleOwner)
		if err != nil {
			return nil, fmt.Errorf("failed to list owners: %w", err)
		}
		for _, owner := range owners {
			for _, n := range notices {
				exists, err := s.notificationRepo.ExistsSince(ctx, owner.ID, string(n.kind), n.title, since)
				if err != nil {
					return nil, fmt.Errorf("failed to check prior notifications: %w", err)
				}
				if exists {
					continue
				}
				if _, err := s.notifications.Create(ctx, owner.ID, n.kind, n.title, n.message, n.link); err != nil {
					s.logger.Warn("failed to create expiry notification",
						zap.Int64("userID", owner.ID),
						zap.String("title", n.title),
						zap.Error(err))
					continue
				}
				report.Notified++
			}
		}
	}

	changed, err := s.expiryRepo.MarkLicenses(ctx, today, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to update license statuses: %w", err)
	}
	report.StatusesUpdated += changed
	changed, err = s.expiryRepo.MarkWarranties(ctx, today, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to update warranty statuses: %w", err)
	}
	report.StatusesUpdated += changed

	s.logger.Info("expiry scan completed",
		zap.Int("licenses", report.Licenses),
		zap.Int("warranties", report.Warranties),
		zap.Int("notified", report.Notified),
		zap.Int64("statusesUpdated", report.StatusesUpdated),
		zap.Duration("window", time.Duration(s.windowDays)*24*time.Hour),
	)
	return report, nil
}
