package service

import (
	"campus-rewards/internal/model"
	apperrors "campus-rewards/pkg/errors"
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is a shared in-memory backend for the fake repositories. It
// mirrors the conditional-update semantics of the mongo implementations
// so the services exercise the same guard behavior in tests.
type fakeStore struct {
	mu           sync.Mutex
	profiles     map[primitive.ObjectID]model.RewardsProfile
	rewards      map[primitive.ObjectID]model.Reward
	transactions []model.CreditTransaction
	redemptions  []model.RedeemedReward

	// failOn injects an error keyed by "<repo>.<method>" so tests can
	// abort a transaction mid-flight and assert full rollback
	failOn map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[primitive.ObjectID]model.RewardsProfile),
		rewards:  make(map[primitive.ObjectID]model.Reward),
		failOn:   make(map[string]error),
	}
}

func (s *fakeStore) fail(op string) error {
	if err, ok := s.failOn[op]; ok {
		return err
	}
	return nil
}

// snapshot deep-copies the store state
func (s *fakeStore) snapshot() *fakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := newFakeStore()
	for id, p := range s.profiles {
		snap.profiles[id] = p
	}
	for id, r := range s.rewards {
		snap.rewards[id] = r
	}
	snap.transactions = append([]model.CreditTransaction(nil), s.transactions...)
	snap.redemptions = append([]model.RedeemedReward(nil), s.redemptions...)
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = snap.profiles
	s.rewards = snap.rewards
	s.transactions = snap.transactions
	s.redemptions = snap.redemptions
}

// fakeTxRunner serializes transactions and rolls the store back to its
// pre-transaction snapshot when the closure fails, matching the
// all-or-nothing guarantee of the mongo unit of work.
type fakeTxRunner struct {
	store *fakeStore
	txMu  sync.Mutex
}

func (r *fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.snapshot()
	if err := fn(ctx); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

type fakeProfileRepo struct {
	store *fakeStore
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *model.RewardsProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range r.store.profiles {
		if p.UserID == profile.UserID {
			return apperrors.ErrProfileExists
		}
	}
	r.store.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.RewardsProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range r.store.profiles {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.RewardsProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakeProfileRepo) AddCredits(ctx context.Context, id primitive.ObjectID, amount int64) error {
	if err := r.store.fail("profiles.AddCredits"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.profiles[id]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	p.CurrentCredits += amount
	p.EarnedCredits += amount
	r.store.profiles[id] = p
	return nil
}

func (r *fakeProfileRepo) AdjustCurrent(ctx context.Context, id primitive.ObjectID, delta int64) error {
	if err := r.store.fail("profiles.AdjustCurrent"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.profiles[id]
	if !ok || (delta < 0 && p.CurrentCredits < -delta) {
		return apperrors.ErrInsufficientCredits
	}
	p.CurrentCredits += delta
	r.store.profiles[id] = p
	return nil
}

func (r *fakeProfileRepo) ListTopByEarned(ctx context.Context, limit int) ([]*model.RewardsProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all := make([]*model.RewardsProfile, 0, len(r.store.profiles))
	for _, p := range r.store.profiles {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].EarnedCredits != all[j].EarnedCredits {
			return all[i].EarnedCredits > all[j].EarnedCredits
		}
		return all[i].ID.Hex() < all[j].ID.Hex()
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeRewardRepo struct {
	store *fakeStore
}

func (r *fakeRewardRepo) Create(ctx context.Context, reward *model.Reward) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.rewards[reward.ID] = *reward
	return nil
}

func (r *fakeRewardRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Reward, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rw, ok := r.store.rewards[id]
	if !ok {
		return nil, apperrors.ErrRewardUnavailable
	}
	cp := rw
	return &cp, nil
}

func (r *fakeRewardRepo) DecrementQuantity(ctx context.Context, id primitive.ObjectID, n int64) error {
	if err := r.store.fail("rewards.DecrementQuantity"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rw, ok := r.store.rewards[id]
	if !ok || rw.Quantity < n {
		return apperrors.ErrRewardUnavailable
	}
	rw.Quantity -= n
	r.store.rewards[id] = rw
	return nil
}

func (r *fakeRewardRepo) List(ctx context.Context) ([]*model.Reward, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all := make([]*model.Reward, 0, len(r.store.rewards))
	for _, rw := range r.store.rewards {
		cp := rw
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ListedAt.After(all[j].ListedAt)
	})
	return all, nil
}

func (r *fakeRewardRepo) ListAvailable(ctx context.Context) ([]*model.Reward, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var available []*model.Reward
	for _, rw := range r.store.rewards {
		if rw.Quantity > 0 {
			cp := rw
			available = append(available, &cp)
		}
	}
	return available, nil
}

type fakeTransactionRepo struct {
	store *fakeStore
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *model.CreditTransaction) error {
	if err := r.store.fail("transactions.Create"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.transactions = append(r.store.transactions, *tx)
	return nil
}

func (r *fakeTransactionRepo) ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]*model.CreditTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var entries []*model.CreditTransaction
	// Append order is chronological; walk backwards for newest first
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		if r.store.transactions[i].ProfileID == profileID {
			cp := r.store.transactions[i]
			entries = append(entries, &cp)
		}
	}
	return entries, nil
}

type fakeRedemptionRepo struct {
	store *fakeStore
}

func (r *fakeRedemptionRepo) Create(ctx context.Context, receipt *model.RedeemedReward) error {
	if err := r.store.fail("redemptions.Create"); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.redemptions = append(r.store.redemptions, *receipt)
	return nil
}

func (r *fakeRedemptionRepo) ListByUser(ctx context.Context, userID string) ([]*model.RedeemedReward, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var receipts []*model.RedeemedReward
	for i := len(r.store.redemptions) - 1; i >= 0; i-- {
		if r.store.redemptions[i].UserID == userID {
			cp := r.store.redemptions[i]
			receipts = append(receipts, &cp)
		}
	}
	return receipts, nil
}

// fixture bundles a store with every fake wired up
type fixture struct {
	store        *fakeStore
	tx           *fakeTxRunner
	profiles     *fakeProfileRepo
	rewards      *fakeRewardRepo
	transactions *fakeTransactionRepo
	redemptions  *fakeRedemptionRepo
}

func newFixture() *fixture {
	store := newFakeStore()
	return &fixture{
		store:        store,
		tx:           &fakeTxRunner{store: store},
		profiles:     &fakeProfileRepo{store: store},
		rewards:      &fakeRewardRepo{store: store},
		transactions: &fakeTransactionRepo{store: store},
		redemptions:  &fakeRedemptionRepo{store: store},
	}
}

func (f *fixture) ledger() *LedgerService {
	return NewLedgerService(f.profiles, f.transactions, f.tx)
}

func (f *fixture) redemption() *RedemptionService {
	return NewRedemptionService(f.rewards, f.profiles, f.transactions, f.redemptions, f.tx)
}

func (f *fixture) seedProfile(userID, displayName string, current, earned int64) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.store.profiles[id] = model.RewardsProfile{
		ID:             id,
		UserID:         userID,
		DisplayName:    displayName,
		CurrentCredits: current,
		EarnedCredits:  earned,
	}
	return id
}

func (f *fixture) seedReward(item string, quantity, defaultCost, discountCost int64) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.store.rewards[id] = model.Reward{
		ID:           id,
		Item:         item,
		Quantity:     quantity,
		DefaultCost:  defaultCost,
		DiscountCost: discountCost,
	}
	return id
}
