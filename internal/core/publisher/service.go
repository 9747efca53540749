// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publisher

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/identity"
)

const maxNameLength = 300

// # Service Layer

// Service orchestrates the business logic for publishers.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListPublishers returns a page of publishers matching the filter.
func (service *Service) ListPublishers(ctx context.Context, filter Filter, limit, offset int) ([]*Publisher, int, error) {
	publishers, total, err := service.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, publisher := range publishers {
		publisher.DN = identity.PublisherDN(publisher.Name)
	}
	return publishers, total, nil
}

// GetPublisher returns a publisher by id.
func (service *Service) GetPublisher(ctx context.Context, id string) (*Publisher, error) {
	publisher, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publisher.DN = identity.PublisherDN(publisher.Name)
	return publisher, nil
}

/*
CreatePublisher derives the publisher id from its DN and persists it.

Returns:
  - error: VALIDATION_ERROR, or CONFLICT when the name is already registered
*/
func (service *Service) CreatePublisher(ctx context.Context, publisher *Publisher) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, publisher.Name).MaxLen(FieldName, publisher.Name, maxNameLength)
	if err := validator.Err(); err != nil {
		return err
	}

	publisher.DN = identity.PublisherDN(publisher.Name)
	publisher.ID = identity.Deterministic(publisher.DN).String()

	if err := service.repo.Create(ctx, publisher); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return apperr.Conflict("A publisher with this name already exists")
		}
		return err
	}

	service.logger.Info("publisher_created",
		slog.String("publisher_id", publisher.ID),
		slog.String("dn", publisher.DN),
	)
	return nil
}

// DeletePublisher removes a publisher. Books keep existing without one.
func (service *Service) DeletePublisher(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("publisher_deleted", slog.String("publisher_id", id))
	return nil
}
