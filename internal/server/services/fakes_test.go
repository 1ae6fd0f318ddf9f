package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/dbx"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/admins"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/homepage"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/news"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/people"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/publications"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/researchareas"
	"github.com/juju/clock/testclock"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

var t0 = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newClock() *testclock.Clock { return testclock.NewClock(t0) }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// fakeRM hands out the same fake repositories regardless of the DBTX.
type fakeRM struct {
	repomanager.RepositoryManager
	admins   *fakeAdmins
	pubs     *fakePubs
	people   *fakePeople
	news     *fakeNews
	areas    *fakeAreas
	homepage *fakeHomePage
}

func newFakeRM() *fakeRM {
	return &fakeRM{
		admins:   &fakeAdmins{byEmail: map[string]*models.Account{}},
		pubs:     &fakePubs{},
		people:   &fakePeople{},
		news:     &fakeNews{},
		areas:    &fakeAreas{},
		homepage: &fakeHomePage{},
	}
}

func (f *fakeRM) Admins(dbx.DBTX) admins.Repository               { return f.admins }
func (f *fakeRM) Publications(dbx.DBTX) publications.Repository   { return f.pubs }
func (f *fakeRM) People(dbx.DBTX) people.Repository               { return f.people }
func (f *fakeRM) News(dbx.DBTX) news.Repository                   { return f.news }
func (f *fakeRM) ResearchAreas(dbx.DBTX) researchareas.Repository { return f.areas }
func (f *fakeRM) HomePage(dbx.DBTX) homepage.Repository           { return f.homepage }

type fakeAdmins struct {
	byEmail map[string]*models.Account
	err     error
}

func (f *fakeAdmins) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}
	a.CreatedAt = t0
	cp := *a
	f.byEmail[a.Email] = &cp
	return a, nil
}

func (f *fakeAdmins) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdmins) FindByID(_ context.Context, id string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.byEmail {
		if a.ID == id {
			cp := *a
			cp.PasswordHash = ""
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAdmins) Count(context.Context) (int64, error) {
	return int64(len(f.byEmail)), f.err
}

type fakePubs struct {
	items []*models.Publication
	err   error
}

func (f *fakePubs) List(context.Context) ([]*models.Publication, error) { return f.items, f.err }
func (f *fakePubs) Create(_ context.Context, p *models.Publication) (*models.Publication, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items = append(f.items, p)
	return p, nil
}
func (f *fakePubs) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
func (f *fakePubs) Count(context.Context) (int64, error) { return int64(len(f.items)), f.err }

type fakePeople struct {
	items []*models.Person
	err   error
}

func (f *fakePeople) List(context.Context) ([]*models.Person, error) { return f.items, f.err }
func (f *fakePeople) Create(_ context.Context, p *models.Person) (*models.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items = append(f.items, p)
	return p, nil
}
func (f *fakePeople) Delete(_ context.Context, id string) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
func (f *fakePeople) Count(context.Context) (int64, error) { return int64(len(f.items)), f.err }

type fakeNews struct {
	items     []*models.NewsItem
	lastLimit int
	err       error
}

func (f *fakeNews) List(context.Context) ([]*models.NewsItem, error) { return f.items, f.err }
func (f *fakeNews) Latest(_ context.Context, limit int) ([]*models.NewsItem, error) {
	f.lastLimit = limit
	if len(f.items) > limit {
		return f.items[:limit], f.err
	}
	return f.items, f.err
}
func (f *fakeNews) Create(_ context.Context, n *models.NewsItem) (*models.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items = append(f.items, n)
	return n, nil
}
func (f *fakeNews) Delete(_ context.Context, id string) error {
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
func (f *fakeNews) Count(context.Context) (int64, error) { return int64(len(f.items)), f.err }

type fakeAreas struct {
	items []*models.ResearchArea
	err   error
}

func (f *fakeAreas) List(context.Context) ([]*models.ResearchArea, error) { return f.items, f.err }
func (f *fakeAreas) Create(_ context.Context, a *models.ResearchArea) (*models.ResearchArea, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items = append(f.items, a)
	return a, nil
}
func (f *fakeAreas) Delete(_ context.Context, id string) error {
	for i, a := range f.items {
		if a.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
func (f *fakeAreas) Count(context.Context) (int64, error) { return int64(len(f.items)), f.err }

// fakeHomePage emulates the single-row table, including the insert that
// does nothing when the row exists.
type fakeHomePage struct {
	row     *models.HomePage
	creates int
	getErr  error
	updErr  error
}

func (f *fakeHomePage) Get(context.Context) (*models.HomePage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.row == nil {
		return nil, common.ErrorNotFound
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeHomePage) GetForUpdate(ctx context.Context) (*models.HomePage, error) {
	return f.Get(ctx)
}

func (f *fakeHomePage) CreateIfAbsent(_ context.Context, hp *models.HomePage) error {
	f.creates++
	if f.row == nil {
		cp := *hp
		f.row = &cp
	}
	return nil
}

func (f *fakeHomePage) Update(_ context.Context, hp *models.HomePage) error {
	if f.updErr != nil {
		return f.updErr
	}
	if f.row == nil {
		return common.ErrorNotFound
	}
	cp := *hp
	f.row = &cp
	return nil
}

func (f *fakeHomePage) Count(context.Context) (int64, error) {
	if f.row == nil {
		return 0, nil
	}
	return 1, nil
}
