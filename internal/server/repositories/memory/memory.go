// Package memory is an in-process RepositoryManager. It keeps the same
// ordering and error contracts as the PostgreSQL repositories and ignores
// the DBTX it is handed, so transactions are not isolated.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/dbx"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/admins"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/homepage"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/news"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/people"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/publications"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/researchareas"
)

type store struct {
	mu           sync.Mutex
	admins       []*models.Account
	publications []*models.Publication
	people       []*models.Person
	news         []*models.NewsItem
	areas        []*models.ResearchArea
	homepage     *models.HomePage
}

// RepositoryManager shares one store between all repositories it vends.
type RepositoryManager struct {
	s *store
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{s: &store{}}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *RepositoryManager) Admins(dbx.DBTX) admins.Repository { return (*adminRepo)(m.s) }

func (m *RepositoryManager) Publications(dbx.DBTX) publications.Repository {
	return (*publicationRepo)(m.s)
}

func (m *RepositoryManager) People(dbx.DBTX) people.Repository { return (*personRepo)(m.s) }

func (m *RepositoryManager) News(dbx.DBTX) news.Repository { return (*newsRepo)(m.s) }

func (m *RepositoryManager) ResearchAreas(dbx.DBTX) researchareas.Repository {
	return (*areaRepo)(m.s)
}

func (m *RepositoryManager) HomePage(dbx.DBTX) homepage.Repository { return (*homePageRepo)(m.s) }

// --- admins ---

type adminRepo store

func (r *adminRepo) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.admins {
		if x.Email == a.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	cp := *a
	r.admins = append(r.admins, &cp)
	return a, nil
}

func (r *adminRepo) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.admins {
		if x.Email == email {
			cp := *x
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *adminRepo) FindByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.admins {
		if x.ID == id {
			cp := *x
			cp.PasswordHash = ""
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *adminRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}

// --- publications ---

type publicationRepo store

func (r *publicationRepo) List(context.Context) ([]*models.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := copyAll(r.publications)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *publicationRepo) Create(_ context.Context, p *models.Publication) (*models.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.publications = append(r.publications, &cp)
	return p, nil
}

func (r *publicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ok bool
	r.publications, ok = remove(r.publications, func(p *models.Publication) bool { return p.ID == id })
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *publicationRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.publications)), nil
}

// --- people ---

type personRepo store

func (r *personRepo) List(context.Context) ([]*models.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := copyAll(r.people)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *personRepo) Create(_ context.Context, p *models.Person) (*models.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.people = append(r.people, &cp)
	return p, nil
}

func (r *personRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ok bool
	r.people, ok = remove(r.people, func(p *models.Person) bool { return p.ID == id })
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *personRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.people)), nil
}

// --- news ---

type newsRepo store

func (r *newsRepo) sorted() []*models.NewsItem {
	out := copyAll(r.news)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *newsRepo) List(context.Context) ([]*models.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *newsRepo) Latest(_ context.Context, limit int) ([]*models.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *newsRepo) Create(_ context.Context, n *models.NewsItem) (*models.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.news = append(r.news, &cp)
	return n, nil
}

func (r *newsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ok bool
	r.news, ok = remove(r.news, func(n *models.NewsItem) bool { return n.ID == id })
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *newsRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.news)), nil
}

// --- research areas ---

type areaRepo store

func (r *areaRepo) List(context.Context) ([]*models.ResearchArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := copyAll(r.areas)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *areaRepo) Create(_ context.Context, a *models.ResearchArea) (*models.ResearchArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.areas = append(r.areas, &cp)
	return a, nil
}

func (r *areaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ok bool
	r.areas, ok = remove(r.areas, func(a *models.ResearchArea) bool { return a.ID == id })
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *areaRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.areas)), nil
}

// --- home page ---

type homePageRepo store

func (r *homePageRepo) Get(context.Context) (*models.HomePage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.homepage == nil {
		return nil, common.ErrorNotFound
	}
	cp := *r.homepage
	return &cp, nil
}

func (r *homePageRepo) GetForUpdate(ctx context.Context) (*models.HomePage, error) {
	return r.Get(ctx)
}

func (r *homePageRepo) CreateIfAbsent(_ context.Context, hp *models.HomePage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.homepage == nil {
		cp := *hp
		r.homepage = &cp
	}
	return nil
}

func (r *homePageRepo) Update(_ context.Context, hp *models.HomePage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.homepage == nil {
		return common.ErrorNotFound
	}
	cp := *hp
	r.homepage = &cp
	return nil
}

func (r *homePageRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.homepage == nil {
		return 0, nil
	}
	return 1, nil
}

// --- helpers ---

func copyAll[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out
}

func remove[T any](items []*T, match func(*T) bool) ([]*T, bool) {
	for i, it := range items {
		if match(it) {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
