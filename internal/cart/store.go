package cart

import "context"

// Store is the slice of the cart the checkout flow gets: read the current
// snapshot, clear the whole cart. Checkout never edits individual lines.
type Store interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Clear(ctx context.Context) error
}

type userStore struct {
	repo   Repository
	userID string
}

// ForUser binds a repository to a single user's cart.
func ForUser(repo Repository, userID string) Store {
	return &userStore{repo: repo, userID: userID}
}

func (s *userStore) Snapshot(ctx context.Context) (Snapshot, error) {
	c, err := s.repo.GetCart(ctx, s.userID)
	if err != nil {
		return Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (s *userStore) Clear(ctx context.Context) error {
	return s.repo.ClearCart(ctx, s.userID)
}
