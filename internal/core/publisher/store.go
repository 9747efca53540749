// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publisher

import "context"

// Repository defines the data access contract for publishers.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Publisher, int, error)
	FindByID(ctx context.Context, id string) (*Publisher, error)

	// Create inserts a publisher whose ID is already derived.
	// Returns CONFLICT when that ID exists.
	Create(ctx context.Context, publisher *Publisher) error

	Delete(ctx context.Context, id string) error
}
