package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/holocron/internal/metrics"
	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

// FavoriteService enforces the favorites rules: a favorite must point at an
// existing user and catalog entry, and a user has at most one favorite per
// target.
type FavoriteService struct {
	store storage.Store
}

// NewFavoriteService creates a new FavoriteService with the given storage backend.
func NewFavoriteService(store storage.Store) *FavoriteService {
	return &FavoriteService{store: store}
}

// ListFavorites returns the favorites of userID in insertion order.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	slog.Info("ListFavorites request received", "user_id", userID)

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, Errorf(CodeNotFound, "User not found")
		}
		slog.Error("ListFavorites failed - could not get user", "user_id", userID, "error", err)
		return nil, NewError(CodeInternal, err)
	}

	favorites, err := s.store.ListFavoritesByUser(ctx, userID)
	if err != nil {
		slog.Error("ListFavorites failed", "user_id", userID, "error", err)
		return nil, NewError(CodeInternal, err)
	}

	slog.Info("ListFavorites successful", "user_id", userID, "count", len(favorites))
	return favorites, nil
}

// AddFavorite creates a favorite of userID for target.
//
// The checks run in this order and the first failure wins:
//  1. the target exists (CodeNotFound)
//  2. the user exists (CodeNotFound)
//  3. no favorite exists yet for the pair (CodeConflict)
//
// Checks and insert share one transaction.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID int64, target models.Target) (*models.Favorite, error) {
	slog.Info("AddFavorite request received", "user_id", userID, "target", target.String())

	if err := target.Validate(); err != nil {
		return nil, NewError(CodeInvalidArgument, err)
	}

	var created *models.Favorite
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		name, err := targetName(ctx, tx, target)
		if err != nil {
			return err
		}

		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return Errorf(CodeNotFound, "User not found")
			}
			return NewError(CodeInternal, err)
		}

		_, err = tx.FindFavorite(ctx, userID, target)
		if err == nil {
			return alreadyFavorite(target)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return NewError(CodeInternal, err)
		}

		fav := models.NewFavorite(userID, target)
		if err := tx.CreateFavorite(ctx, fav); err != nil {
			// A concurrent request for the same pair got in first.
			if errors.Is(err, storage.ErrDuplicate) {
				return alreadyFavorite(target)
			}
			return NewError(CodeInternal, err)
		}
		fav.TargetName = &name
		created = fav
		return nil
	})
	if err != nil {
		s.logFailure("AddFavorite", userID, target, err)
		return nil, err
	}

	metrics.FavoritesAdded.WithLabelValues(string(target.Kind)).Inc()
	slog.Info("Favorite added", "favorite_id", created.ID, "user_id", userID, "target", target.String())
	return created, nil
}

// RemoveFavorite deletes the favorite of userID for target and returns a
// confirmation message.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID int64, target models.Target) (string, error) {
	slog.Info("RemoveFavorite request received", "user_id", userID, "target", target.String())

	if err := target.Validate(); err != nil {
		return "", NewError(CodeInvalidArgument, err)
	}

	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		fav, err := tx.FindFavorite(ctx, userID, target)
		if errors.Is(err, storage.ErrNotFound) {
			return Errorf(CodeNotFound, "Favorite %s not found", target.Kind)
		}
		if err != nil {
			return NewError(CodeInternal, err)
		}

		if err := tx.DeleteFavorite(ctx, fav.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return Errorf(CodeNotFound, "Favorite %s not found", target.Kind)
			}
			return NewError(CodeInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("RemoveFavorite", userID, target, err)
		return "", err
	}

	metrics.FavoritesRemoved.WithLabelValues(string(target.Kind)).Inc()
	slog.Info("Favorite removed", "user_id", userID, "target", target.String())
	return fmt.Sprintf("%s removed from favorites successfully", target.Kind.Label()), nil
}

// targetName looks up the catalog entry behind target and returns its name.
func targetName(ctx context.Context, r storage.Reader, target models.Target) (string, error) {
	var (
		name string
		err  error
	)
	switch target.Kind {
	case models.KindPeople:
		var p *models.Person
		if p, err = r.GetPerson(ctx, target.ID); err == nil {
			name = p.Name
		}
	case models.KindPlanet:
		var p *models.Planet
		if p, err = r.GetPlanet(ctx, target.ID); err == nil {
			name = p.Name
		}
	default:
		return "", NewError(CodeInvalidArgument, models.ErrInvalidTarget)
	}

	if errors.Is(err, storage.ErrNotFound) {
		return "", Errorf(CodeNotFound, "%s not found", target.Kind.Label())
	}
	if err != nil {
		return "", NewError(CodeInternal, err)
	}
	return name, nil
}

func alreadyFavorite(target models.Target) error {
	metrics.FavoriteConflicts.WithLabelValues(string(target.Kind)).Inc()
	return Errorf(CodeConflict, "%s is already in favorites", target.Kind.Label())
}

func (s *FavoriteService) logFailure(op string, userID int64, target models.Target, err error) {
	code := CodeOf(err)
	if code == CodeInternal {
		slog.Error(op+" failed", "user_id", userID, "target", target.String(), "error", err)
		return
	}
	slog.Warn(op+" rejected", "user_id", userID, "target", target.String(), "code", code.String(), "error", err)
}
