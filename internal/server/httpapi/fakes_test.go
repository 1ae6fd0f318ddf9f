package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/services"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

const goodToken = "good-token"

var testAdmin = &models.Account{ID: "9b2d6a52-0d8e-4a4a-9a43-7d3b8f0f6a11", Email: "a@b.com", Name: "Ada", PasswordHash: "secret-hash"}

type fakeAccounts struct {
	loginRes *services.LoginResult
	loginErr error
	authErr  error
	gotEmail string
	gotPass  string
	gotToken string
}

func (f *fakeAccounts) Login(_ context.Context, email, password string) (*services.LoginResult, error) {
	f.gotEmail, f.gotPass = email, password
	return f.loginRes, f.loginErr
}

func (f *fakeAccounts) Authenticate(_ context.Context, token string) (*models.Account, error) {
	f.gotToken = token
	if f.authErr != nil {
		return nil, f.authErr
	}
	if token != goodToken {
		return nil, common.ErrInvalidToken
	}
	return testAdmin, nil
}

type fakeHomePage struct {
	hp     *models.HomePage
	getErr error
	updErr error
	gotIn  *services.HomePageInput
}

func (f *fakeHomePage) Get(context.Context) (*models.HomePage, error) { return f.hp, f.getErr }

func (f *fakeHomePage) Update(_ context.Context, in services.HomePageInput) (*models.HomePage, error) {
	f.gotIn = &in
	if f.updErr != nil {
		return nil, f.updErr
	}
	return f.hp, nil
}

// fakeCollection stands in for any of the four collection services.
type fakeCollection[In any, Out any] struct {
	items     []Out
	listErr   error
	created   Out
	createErr error
	gotIn     *In
	delErr    error
	deletedID string
}

func (f *fakeCollection[In, Out]) List(context.Context) ([]Out, error) { return f.items, f.listErr }

func (f *fakeCollection[In, Out]) Create(_ context.Context, in In) (Out, error) {
	f.gotIn = &in
	if f.createErr != nil {
		var zero Out
		return zero, f.createErr
	}
	return f.created, nil
}

func (f *fakeCollection[In, Out]) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.delErr
}

type fakeNews struct {
	fakeCollection[services.NewsInput, *models.NewsItem]
	latest []*models.NewsItem
}

func (f *fakeNews) Latest(context.Context) ([]*models.NewsItem, error) { return f.latest, f.listErr }

type fakeUploads struct {
	ticket *services.UploadTicket
	err    error
	gotIn  *services.UploadInput
}

func (f *fakeUploads) Presign(_ context.Context, in services.UploadInput) (*services.UploadTicket, error) {
	f.gotIn = &in
	return f.ticket, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type testEnv struct {
	accounts     *fakeAccounts
	homePage     *fakeHomePage
	publications *fakeCollection[services.PublicationInput, *models.Publication]
	people       *fakeCollection[services.PersonInput, *models.Person]
	news         *fakeNews
	areas        *fakeCollection[services.ResearchAreaInput, *models.ResearchArea]
	uploads      *fakeUploads
	deps         Deps
}

func newTestEnv() *testEnv {
	e := &testEnv{
		accounts:     &fakeAccounts{},
		homePage:     &fakeHomePage{},
		publications: &fakeCollection[services.PublicationInput, *models.Publication]{},
		people:       &fakeCollection[services.PersonInput, *models.Person]{},
		news:         &fakeNews{},
		areas:        &fakeCollection[services.ResearchAreaInput, *models.ResearchArea]{},
		uploads:      &fakeUploads{},
	}
	e.deps = Deps{
		Accounts:      e.accounts,
		HomePage:      e.homePage,
		Publications:  e.publications,
		People:        e.people,
		News:          e.news,
		ResearchAreas: e.areas,
		Uploads:       e.uploads,
		DB:            fakePinger{},
	}
	return e
}

func (e *testEnv) router() http.Handler { return NewRouter(e.deps) }

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, rec)["error"].(string)
	return msg
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
