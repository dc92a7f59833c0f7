package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/cache"
	"finance-tracker/internal/entities"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"
)

// TransactionService defines the interface for transaction business logic.
//
// Update and Delete act on any transaction id; they do not check that the
// record belongs to the caller.
type TransactionService interface {
	Create(ctx context.Context, userID string, in *models.TransactionInput) (*entities.Transaction, error)
	List(ctx context.Context, userID string) ([]*entities.Transaction, error)
	// Update returns nil, nil when no transaction has the given id
	Update(ctx context.Context, id string, in *models.TransactionInput) (*entities.Transaction, error)
	// Delete succeeds whether or not the transaction existed
	Delete(ctx context.Context, id string) error
}

type transactionService struct {
	repo     repository.TransactionRepository
	cache    cache.Cache
	cacheTTL time.Duration
	log      logging.Logger
}

// NewTransactionService creates a new transaction service. cacheClient may be nil.
func NewTransactionService(repo repository.TransactionRepository, cacheClient cache.Cache, cacheTTL time.Duration, log logging.Logger) TransactionService {
	svc := &transactionService{
		repo:     repo,
		cacheTTL: cacheTTL,
		log:      log.With("component", "transaction_service"),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// A user's cached list lives under a key that embeds the user's generation.
// Every write bumps the generation, so a List that read the store before the
// write can only fill a key no later reader looks up.
func generationKey(userID string) string {
	return fmt.Sprintf("transactions:user:%s:gen", userID)
}

func listCacheKey(userID string, gen int64) string {
	return fmt.Sprintf("transactions:user:%s:v%d", userID, gen)
}

// validateInput re-checks what the request schema guarantees, for callers
// that build a TransactionInput themselves.
func validateInput(in *models.TransactionInput) error {
	if in == nil {
		return apperrors.NewValidationError(`"value" must be of type object`)
	}
	if in.Category == "" {
		return apperrors.NewValidationError(`"category" is not allowed to be empty`)
	}
	if !in.Type.Valid() {
		return apperrors.NewValidationError(`"type" must be one of [income, expense]`)
	}
	return nil
}

// Create stores a new transaction owned by userID
func (s *transactionService) Create(ctx context.Context, userID string, in *models.TransactionInput) (*entities.Transaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	tx, err := s.repo.Create(ctx, userID, *in)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return tx, nil
}

// List returns all transactions of userID, never nil
func (s *transactionService) List(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	key, cached := s.cachedList(ctx, userID)
	if cached != nil {
		return cached, nil
	}

	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = make([]*entities.Transaction, 0)
	}

	if key != "" {
		if err := s.cache.SetJSON(ctx, key, txs, s.cacheTTL); err != nil {
			s.log.Warn(ctx, "failed to populate transaction cache", "key", key, "error", err)
		}
	}

	return txs, nil
}

// cachedList returns the list key for the current generation and its cached
// value, if any. An empty key means the cache is unusable for this call.
func (s *transactionService) cachedList(ctx context.Context, userID string) (string, []*entities.Transaction) {
	if s.cache == nil {
		return "", nil
	}

	var gen int64
	raw, err := s.cache.Get(ctx, generationKey(userID))
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
	case err != nil:
		s.log.Warn(ctx, "failed to read transaction cache generation", "user_id", userID, "error", err)
		return "", nil
	default:
		gen, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.log.Warn(ctx, "corrupt transaction cache generation", "user_id", userID, "value", raw)
			return "", nil
		}
	}

	key := listCacheKey(userID, gen)
	var cached []*entities.Transaction
	err = s.cache.GetJSON(ctx, key, &cached)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn(ctx, "failed to read transaction cache", "key", key, "error", err)
	}
	if err != nil {
		cached = nil
	}
	return key, cached
}

// Update replaces amount, category and type of the transaction with the given id
func (s *transactionService) Update(ctx context.Context, id string, in *models.TransactionInput) (*entities.Transaction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	// canonical form; Postgres rejects some spellings uuid.Parse accepts
	tx, err := s.repo.Update(ctx, parsed.String(), *in)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, tx.UserID)
	return tx, nil
}

// Delete removes the transaction with the given id
func (s *transactionService) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	owner, err := s.repo.Delete(ctx, parsed.String())
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, owner)
	return nil
}

// invalidate moves userID to a new cache generation
func (s *transactionService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	key := generationKey(userID)
	if _, err := s.cache.Incr(ctx, key); err != nil {
		s.log.Warn(ctx, "failed to invalidate transaction cache", "key", key, "error", err)
	}
}
