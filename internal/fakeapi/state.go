package fakeapi

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

var (
	errUserExists         = errors.New("User already exists")
	errInvalidCredentials = errors.New("Invalid credentials")
	errWrongPassword      = errors.New("Current password is incorrect")
	errUserNotFound       = errors.New("User not found")
	errStoreNotFound      = errors.New("Store not found")
	errOwnerInvalid       = errors.New("Owner must be an existing owner or admin")
	errNoOwnerStore       = errors.New("No store found for this owner")
	errAlreadyRated       = errors.New("You have already rated this store")
	errRatingNotFound     = errors.New("Rating not found")
)

type account struct {
	domain.User
	hash []byte
}

type rating struct {
	userID    int64
	storeID   int64
	value     int
	createdAt time.Time
}

// state is the in-memory database behind the fake backend.
type state struct {
	mu       sync.RWMutex
	nextUser int64
	nextShop int64
	users    map[int64]*account
	stores   map[int64]*domain.NewStore
	ratings  map[[2]int64]*rating
	cost     int
	now      func() time.Time
}

func newState() *state {
	return &state{
		users:   make(map[int64]*account),
		stores:  make(map[int64]*domain.NewStore),
		ratings: make(map[[2]int64]*rating),
		cost:    bcrypt.MinCost,
		now:     time.Now,
	}
}

func (s *state) addUser(in domain.NewUser) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.Email, in.Email) {
			return domain.User{}, errUserExists
		}
	}
	s.nextUser++
	a := &account{
		User: domain.User{ID: s.nextUser, Name: in.Name, Email: in.Email, Role: in.Role, Address: in.Address},
		hash: hash,
	}
	s.users[a.ID] = a
	return a.User, nil
}

func (s *state) login(email, password string) (domain.User, error) {
	s.mu.RLock()
	var found *account
	for _, a := range s.users {
		if strings.EqualFold(a.Email, email) {
			found = a
			break
		}
	}
	s.mu.RUnlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(password)) != nil {
		return domain.User{}, errInvalidCredentials
	}
	return found.User, nil
}

func (s *state) updatePassword(userID int64, current, next string) error {
	s.mu.RLock()
	a, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return errUserNotFound
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(current)) != nil {
		return errWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	a.hash = hash
	s.mu.Unlock()
	return nil
}

func (s *state) user(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return a.User, true
}

func (s *state) addStore(in domain.NewStore) (domain.AdminStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.users[in.OwnerID]
	if !ok || (owner.Role != domain.RoleOwner && owner.Role != domain.RoleAdmin) {
		return domain.AdminStore{}, errOwnerInvalid
	}
	s.nextShop++
	st := in
	s.stores[s.nextShop] = &st
	return s.adminStoreLocked(s.nextShop), nil
}

// aggregateLocked returns the mean and count of a store's ratings.
func (s *state) aggregateLocked(storeID int64) (domain.Decimal, domain.Count) {
	var sum, n int
	for _, r := range s.ratings {
		if r.storeID == storeID {
			sum += r.value
			n++
		}
	}
	if n == 0 {
		return domain.Decimal{}, 0
	}
	return domain.Dec(float64(sum) / float64(n)), domain.Count(n)
}

func (s *state) adminStoreLocked(id int64) domain.AdminStore {
	st := s.stores[id]
	avg, n := s.aggregateLocked(id)
	out := domain.AdminStore{
		ID:            id,
		Name:          st.Name,
		Email:         st.Email,
		Address:       st.Address,
		AverageRating: avg,
		RatingCount:   n,
	}
	if owner, ok := s.users[st.OwnerID]; ok {
		out.OwnerName = owner.Name
	}
	return out
}

func (s *state) stats() domain.AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.AdminStats{
		UsersCount:   domain.Count(len(s.users)),
		StoresCount:  domain.Count(len(s.stores)),
		RatingsCount: domain.Count(len(s.ratings)),
	}
}

// counts returns the number of users, stores and admin accounts.
func (s *state) counts() (users, stores, admins int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.users {
		if a.Role == domain.RoleAdmin {
			admins++
		}
	}
	return len(s.users), len(s.stores), admins
}

func contains(field, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
}

func sortBy[T any](items []T, order string, key func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := cmp.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
		if strings.EqualFold(order, "desc") {
			return -c
		}
		return c
	})
}

func (s *state) listUsers(f domain.UserFilter) []domain.User {
	s.mu.RLock()
	out := make([]domain.User, 0, len(s.users))
	for _, a := range s.users {
		if contains(a.Name, f.Name) && contains(a.Email, f.Email) && contains(a.Address, f.Address) &&
			(f.Role == "" || a.Role == f.Role) {
			out = append(out, a.User)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.User) int { return cmp.Compare(a.ID, b.ID) })
	switch f.SortBy {
	case "name":
		sortBy(out, f.Order, func(u domain.User) string { return u.Name })
	case "email":
		sortBy(out, f.Order, func(u domain.User) string { return u.Email })
	case "address":
		sortBy(out, f.Order, func(u domain.User) string { return u.Address })
	case "role":
		sortBy(out, f.Order, func(u domain.User) string { return string(u.Role) })
	}
	return out
}

func (s *state) listStores(f domain.StoreFilter) []domain.AdminStore {
	s.mu.RLock()
	out := make([]domain.AdminStore, 0, len(s.stores))
	for id, st := range s.stores {
		if contains(st.Name, f.Name) && contains(st.Email, f.Email) && contains(st.Address, f.Address) {
			out = append(out, s.adminStoreLocked(id))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.AdminStore) int { return cmp.Compare(a.ID, b.ID) })
	switch f.SortBy {
	case "name":
		sortBy(out, f.Order, func(st domain.AdminStore) string { return st.Name })
	case "email":
		sortBy(out, f.Order, func(st domain.AdminStore) string { return st.Email })
	case "address":
		sortBy(out, f.Order, func(st domain.AdminStore) string { return st.Address })
	}
	return out
}

// userDetail reports the store average for owners and no rating otherwise.
func (s *state) userDetail(id int64) (domain.UserDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.users[id]
	if !ok {
		return domain.UserDetail{}, errUserNotFound
	}
	out := domain.UserDetail{User: a.User}
	if a.Role == domain.RoleOwner {
		if storeID, ok := s.storeOfLocked(id); ok {
			out.Rating, _ = s.aggregateLocked(storeID)
		}
	}
	return out, nil
}

func (s *state) storeOfLocked(ownerID int64) (int64, bool) {
	var best int64
	for id, st := range s.stores {
		if st.OwnerID == ownerID && (best == 0 || id < best) {
			best = id
		}
	}
	return best, best != 0
}

func (s *state) ownerDashboard(ownerID int64) (domain.OwnerDashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	storeID, ok := s.storeOfLocked(ownerID)
	if !ok {
		return domain.OwnerDashboard{}, errNoOwnerStore
	}
	avg, n := s.aggregateLocked(storeID)
	out := domain.OwnerDashboard{
		Store:         s.stores[storeID].Name,
		AverageRating: avg,
		RatingCount:   n,
		Raters:        []domain.Rater{},
	}
	for _, r := range s.ratings {
		if r.storeID != storeID {
			continue
		}
		u := s.users[r.userID]
		out.Raters = append(out.Raters, domain.Rater{Name: u.Name, Email: u.Email, Rating: r.value, CreatedAt: r.createdAt})
	}
	slices.SortFunc(out.Raters, func(a, b domain.Rater) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

// userStores lists stores matching search by name or address, with the
// caller's own rating embedded.
func (s *state) userStores(userID int64, search string) []domain.Store {
	s.mu.RLock()
	out := make([]domain.Store, 0, len(s.stores))
	for id, st := range s.stores {
		if search != "" && !contains(st.Name, search) && !contains(st.Address, search) {
			continue
		}
		avg, n := s.aggregateLocked(id)
		item := domain.Store{
			ID:            id,
			Name:          st.Name,
			Email:         st.Email,
			Address:       st.Address,
			OwnerID:       st.OwnerID,
			OverallRating: avg,
			RatingCount:   n,
		}
		if r, ok := s.ratings[[2]int64{userID, id}]; ok {
			v := r.value
			item.UserRating = &v
		}
		out = append(out, item)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Store) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *state) createRating(userID, storeID int64, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[storeID]; !ok {
		return errStoreNotFound
	}
	key := [2]int64{userID, storeID}
	if _, ok := s.ratings[key]; ok {
		return errAlreadyRated
	}
	s.ratings[key] = &rating{userID: userID, storeID: storeID, value: value, createdAt: s.now()}
	return nil
}

func (s *state) updateRating(userID, storeID int64, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.ratings[[2]int64{userID, storeID}]
	if !ok {
		return errRatingNotFound
	}
	r.value = value
	return nil
}
