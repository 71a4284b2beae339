package listview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/store"
)

type fakeAPI struct {
	users []domain.User
	echo  func(u domain.User) domain.User
}

func (f *fakeAPI) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, errors.New("not used")
}
func (f *fakeAPI) States(context.Context) ([]domain.State, error) { return nil, errors.New("not used") }
func (f *fakeAPI) Cities(context.Context, domain.ID) ([]domain.City, error) {
	return nil, errors.New("not used")
}
func (f *fakeAPI) AddUser(context.Context, domain.Registration) (*ports.RegisterResult, error) {
	return nil, errors.New("not used")
}
func (f *fakeAPI) ListUsers(context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), f.users...), nil
}
func (f *fakeAPI) EditUser(_ context.Context, u domain.User) (*domain.User, error) {
	if f.echo != nil {
		u = f.echo(u)
	}
	return &u, nil
}

// scriptedStore lets a test decide what Snapshot returns and when
// subscribers hear about it.
type scriptedStore struct {
	mu          sync.Mutex
	users       []domain.User
	subs        []func(ports.UserStoreState)
	onSubscribe func()
}

func (s *scriptedStore) Load(context.Context) error { return nil }
func (s *scriptedStore) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *scriptedStore) Snapshot() ports.UserStoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ports.UserStoreState{Users: append([]domain.User(nil), s.users...)}
}

func (s *scriptedStore) Subscribe(fn func(ports.UserStoreState)) func() {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	hook := s.onSubscribe
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return func() {}
}

func (s *scriptedStore) set(users []domain.User) {
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
}

func (s *scriptedStore) emit(st ports.UserStoreState) {
	s.mu.Lock()
	subs := append([]func(ports.UserStoreState)(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

func newLoadedStore(t *testing.T, api *fakeAPI) *store.UserStore {
	t.Helper()
	s := store.New(api, zerolog.Nop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestController_InitialViewFromSnapshot(t *testing.T) {
	s := newLoadedStore(t, &fakeAPI{users: manyUsers(7)})
	c := NewController(s)
	defer c.Close()

	v := c.View()
	assert.Equal(t, 7, v.Total)
	assert.Len(t, v.Items, DefaultPageSize)
	assert.Equal(t, 1, v.Page.Page)
}

func TestController_ReappliesQueryAfterLoad(t *testing.T) {
	api := &fakeAPI{users: sampleUsers()[:2]}
	s := newLoadedStore(t, api)
	c := NewController(s)
	defer c.Close()

	v := c.Search("ali")
	assert.Equal(t, []domain.ID{1}, ids(v.Items))

	api.users = sampleUsers()
	require.NoError(t, s.Load(context.Background()))

	v = c.View()
	assert.Equal(t, "ali", v.Query)
	assert.Equal(t, []domain.ID{1, 3}, ids(v.Items))
	assert.Equal(t, 2, v.Total)
}

func TestController_ReappliesQueryAfterUpdate(t *testing.T) {
	api := &fakeAPI{users: sampleUsers()}
	s := newLoadedStore(t, api)
	c := NewController(s, WithQuery("ali"))
	defer c.Close()
	require.Equal(t, []domain.ID{1, 3}, ids(c.View().Items))

	renamed := sampleUsers()[2]
	renamed.Name = "Marta"
	_, err := s.Update(context.Background(), &renamed)
	require.NoError(t, err)

	v := c.View()
	assert.Equal(t, []domain.ID{1}, ids(v.Items), "renamed user no longer matches")
	assert.Equal(t, 1, v.Total)
}

func TestController_ClampsPageWhenResultShrinks(t *testing.T) {
	api := &fakeAPI{users: manyUsers(12)}
	s := newLoadedStore(t, api)
	c := NewController(s, WithPage(3, 5))
	defer c.Close()
	require.Equal(t, 3, c.View().Page.Page)

	api.users = manyUsers(6)
	require.NoError(t, s.Load(context.Background()))

	v := c.View()
	assert.Equal(t, 2, v.Page.Page)
	assert.Equal(t, []domain.ID{6}, ids(v.Items))
}

func TestController_SetPageClamps(t *testing.T) {
	s := newLoadedStore(t, &fakeAPI{users: manyUsers(6)})
	c := NewController(s)
	defer c.Close()

	assert.Equal(t, 2, c.SetPage(9).Page.Page)
	assert.Equal(t, 1, c.SetPage(-1).Page.Page)
}

func TestController_CloseStopsFollowing(t *testing.T) {
	api := &fakeAPI{users: manyUsers(2)}
	s := newLoadedStore(t, api)
	c := NewController(s)
	c.Close()

	api.users = manyUsers(4)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 2, c.View().Total)
}

func TestController_LateStaleEventDoesNotOverrideStore(t *testing.T) {
	st := &scriptedStore{users: manyUsers(2)}
	c := NewController(st)
	defer c.Close()

	// two overlapping loads: the newer set is committed and announced
	// first, the older set's announcement arrives last
	fresh := sampleUsers()
	stale := manyUsers(4)
	st.set(fresh)
	st.emit(ports.UserStoreState{Users: fresh})
	st.emit(ports.UserStoreState{Users: stale})

	v := c.View()
	assert.Equal(t, []domain.ID{1, 2, 3}, ids(v.Items))
	assert.Equal(t, 3, v.Total)
}

func TestController_OverlappingLoadsMatchFinalStore(t *testing.T) {
	gates := []chan struct{}{make(chan struct{}), make(chan struct{})}
	sets := [][]domain.User{sampleUsers(), manyUsers(4)}
	started := make(chan struct{}, 2)
	var mu sync.Mutex
	n := 0
	api := &gatedAPI{list: func() []domain.User {
		mu.Lock()
		i := n
		n++
		mu.Unlock()
		started <- struct{}{}
		<-gates[i]
		return sets[i]
	}}
	s := store.New(api, zerolog.Nop())
	c := NewController(s)
	defer c.Close()

	errs := make(chan error, 2)
	go func() { errs <- s.Load(context.Background()) }()
	<-started
	go func() { errs <- s.Load(context.Background()) }()
	<-started

	close(gates[1])
	require.NoError(t, <-errs)
	close(gates[0])
	require.NoError(t, <-errs)

	assert.Equal(t, ids(s.Snapshot().Users), ids(c.View().Items))
	assert.Equal(t, []domain.ID{1, 2, 3}, ids(c.View().Items))
}

func TestController_SeesChangeLandingWhileSubscribing(t *testing.T) {
	st := &scriptedStore{users: manyUsers(2)}
	st.onSubscribe = func() { st.set(manyUsers(4)) }

	c := NewController(st)
	defer c.Close()

	assert.Equal(t, 4, c.View().Total)
}

type gatedAPI struct {
	fakeAPI
	list func() []domain.User
}

func (g *gatedAPI) ListUsers(context.Context) ([]domain.User, error) {
	return g.list(), nil
}
