package service

import (
	"context"
	"fmt"
	"time"

	"artnotifier/internal/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListQuery struct {
	Status   entity.Status
	Category entity.Category
	Channel  entity.Channel
	Unread   bool
	Page     int
	Limit    int
}

// List returns one page of owner's notifications, newest first.
func (s *NotifyService) List(ctx context.Context, owner uuid.UUID, q ListQuery) (*entity.Page, error) {
	const op = "service.NotifyService.List"

	start := time.Now()
	defer s.logSlowOperation(ctx, op, start, zap.String("user_id", owner.String()))

	if q.Status != "" && !q.Status.IsValid() {
		return nil, fmt.Errorf("%s: invalid status %q: %w", op, q.Status, entity.ErrInvalidData)
	}
	if q.Category != "" && !q.Category.IsValid() {
		return nil, fmt.Errorf("%s: invalid category %q: %w", op, q.Category, entity.ErrInvalidData)
	}
	if q.Channel != "" && !q.Channel.IsValid() {
		return nil, fmt.Errorf("%s: invalid channel %q: %w", op, q.Channel, entity.ErrInvalidData)
	}

	filter := entity.Filter{
		UserID:   owner,
		Status:   q.Status,
		Category: q.Category,
		Channel:  q.Channel,
		Unread:   q.Unread,
	}
	page := entity.PageRequest{Page: q.Page, Limit: q.Limit}.Normalize(s.defaultPageLimit, s.maxPageLimit)

	items, err := s.repo.List(ctx, nil, filter, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total, err := s.repo.Count(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if items == nil {
		items = []entity.Notification{}
	}

	return &entity.Page{
		Items:       items,
		Total:       total,
		TotalPages:  entity.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}, nil
}

func (s *NotifyService) Counts(ctx context.Context, owner uuid.UUID) (*entity.Counts, error) {
	const op = "service.NotifyService.Counts"

	unread, err := s.repo.Count(ctx, nil, entity.Filter{UserID: owner, Unread: true})
	if err != nil {
		return nil, fmt.Errorf("%s: unread: %w", op, err)
	}

	total, err := s.repo.Count(ctx, nil, entity.Filter{UserID: owner})
	if err != nil {
		return nil, fmt.Errorf("%s: total: %w", op, err)
	}

	return &entity.Counts{Unread: unread, Total: total}, nil
}
