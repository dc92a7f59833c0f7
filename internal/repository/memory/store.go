// Package memory keeps users and transactions in process memory. It backs
// STORAGE=memory and the service and router tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/entities"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"
)

// Store holds both tables behind one lock so the user foreign key on
// transactions can be enforced.
type Store struct {
	mu sync.RWMutex

	users map[string]*entities.User

	// transactions in insertion order; index maps id to position
	transactions []*entities.Transaction
	index        map[string]int

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*entities.User),
		index: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Users returns the user table of the store.
func (s *Store) Users() repository.UserRepository {
	return userStore{s}
}

// Transactions returns the transaction table of the store.
func (s *Store) Transactions() repository.TransactionRepository {
	return transactionStore{s}
}

type userStore struct{ *Store }

type transactionStore struct{ *Store }

func (s userStore) Create(ctx context.Context, username, email, passwordHash string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, apperrors.ErrUserExists
		}
	}

	u := &entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u

	cp := *u
	return &cp, nil
}

func (s userStore) FindByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s transactionStore) Create(ctx context.Context, userID string, in models.TransactionInput) (*entities.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		// mirrors the foreign key on transactions.user_id
		return nil, apperrors.ErrNotFound
	}

	tx := &entities.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Amount:   in.Amount,
		Category: in.Category,
		Type:     in.Type,
		Date:     s.now(),
	}
	s.index[tx.ID] = len(s.transactions)
	s.transactions = append(s.transactions, tx)

	cp := *tx
	return &cp, nil
}

func (s transactionStore) ListByUser(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s transactionStore) Update(ctx context.Context, id string, in models.TransactionInput) (*entities.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	tx := s.transactions[i]
	tx.Amount = in.Amount
	tx.Category = in.Category
	tx.Type = in.Type

	cp := *tx
	return &cp, nil
}

func (s transactionStore) Delete(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	owner := s.transactions[i].UserID

	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.transactions); j++ {
		s.index[s.transactions[j].ID] = j
	}
	return owner, nil
}
