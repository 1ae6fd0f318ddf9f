// Package diagnostics checks that a deployment is healthy: the database is
// reachable and seeded, the server answers, the list endpoints return JSON
// and the static site is in place.
package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/filex"
	"github.com/dmitrijs2005/labsite/internal/netx"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
)

const (
	DefaultTimeout = 2 * time.Second
	rule           = "=================================================="
)

// OpenFunc opens the database checked in step one. The runner closes it.
type OpenFunc func(ctx context.Context) (*sql.DB, error)

type Options struct {
	BaseURL   string
	StaticDir string
	Timeout   time.Duration
}

// Runner executes the checks in order and prints a report to out.
type Runner struct {
	out     io.Writer
	open    OpenFunc
	manager repomanager.RepositoryManager
	client  *http.Client
	opts    Options
}

func NewRunner(out io.Writer, open OpenFunc, m repomanager.RepositoryManager, client *http.Client, opts Options) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Runner{out: out, open: open, manager: m, client: client, opts: opts}
}

// Summary records the outcome of each check.
type Summary struct {
	Database bool
	Server   bool
	API      bool
	Files    bool
}

func (s Summary) OK() bool {
	return s.Database && s.Server && s.API && s.Files
}

// Run executes all checks and reports whether every one passed.
func (r *Runner) Run(ctx context.Context) Summary {
	r.printf("Running diagnostics...\n\n%s\n", rule)

	s := Summary{
		Database: r.checkDatabase(ctx),
		Server:   r.checkServer(ctx),
		API:      r.checkAPI(ctx),
		Files:    r.checkFiles(),
	}

	r.printf("\n%s\n\nSUMMARY:\n\n", rule)
	r.printf("Database:       %s\n", status(s.Database))
	r.printf("Server:         %s\n", status(s.Server))
	r.printf("API:            %s\n", status(s.API))
	r.printf("File structure: %s\n", status(s.Files))
	r.printf("\n%s\n", rule)

	if s.OK() {
		r.printf("\nEverything looks good. The site should be available at %s\n", r.opts.BaseURL)
		return s
	}

	r.printf("\nIssues found. Apply the fixes above and run diagnostics again.\n")
	if !s.Database {
		r.printf("  - start PostgreSQL and check DATABASE_URL\n")
	}
	if !s.Files {
		r.printf("  - put the built site into %s\n", r.opts.StaticDir)
	}
	if !s.Server || !s.API {
		r.printf("  - start the server and keep it running\n")
	}
	return s
}

type tableCount struct {
	name  string
	count func(context.Context) (int64, error)
}

func (r *Runner) checkDatabase(ctx context.Context) bool {
	r.printf("\n[1/4] Testing database connection...\n")

	ctx, cancel := context.WithTimeout(ctx, 2*r.opts.Timeout)
	defer cancel()

	db, err := r.open(ctx)
	if err != nil {
		r.printf("FAIL database connection failed: %v\n", err)
		r.printf("     Fix: start PostgreSQL and check the DSN\n")
		return false
	}
	defer db.Close()
	r.printf("OK   database is connected\n")

	tables := []tableCount{
		{"admins", r.manager.Admins(db).Count},
		{"publications", r.manager.Publications(db).Count},
		{"people", r.manager.People(db).Count},
		{"news", r.manager.News(db).Count},
		{"research_areas", r.manager.ResearchAreas(db).Count},
		{"homepage", r.manager.HomePage(db).Count},
	}

	ok := true
	for _, t := range tables {
		n, err := t.count(ctx)
		if err != nil {
			r.printf("FAIL %s: %v\n", t.name, err)
			ok = false
			continue
		}
		r.printf("OK   %s: %d rows\n", t.name, n)
		if t.name == "admins" && n == 0 {
			r.printf("WARN no admin accounts exist; run createadmin to add one\n")
		}
	}
	if !ok {
		r.printf("     Fix: start the server once so migrations run\n")
	}
	return ok
}

func (r *Runner) checkServer(ctx context.Context) bool {
	r.printf("\n[2/4] Testing server connection...\n")

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	code, err := netx.Probe(ctx, r.client, r.opts.BaseURL+"/")
	if err != nil {
		r.printf("FAIL server is not reachable at %s: %v\n", r.opts.BaseURL, err)
		r.printf("     Fix: start the server\n")
		return false
	}
	r.printf("OK   server is running (status %d)\n", code)
	return true
}

var listEndpoints = []string{"publications", "people", "news", "research-areas"}

func (r *Runner) checkAPI(ctx context.Context) bool {
	r.printf("\n[3/4] Testing API endpoints...\n")

	ok := true
	for _, name := range listEndpoints {
		url := r.opts.BaseURL + common.APIPrefix + "/" + name
		items, err := r.fetchList(ctx, url)
		if err != nil {
			r.printf("FAIL %s: %v\n", name, err)
			ok = false
			continue
		}
		r.printf("OK   API is responding (found %d %s)\n", items, name)
	}
	return ok
}

func (r *Runner) fetchList(ctx context.Context, url string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	var items []map[string]any
	if err := netx.GetJSON(ctx, r.client, url, &items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *Runner) checkFiles() bool {
	r.printf("\n[4/4] Checking file structure...\n")

	isDir, err := filex.IsDir(r.opts.StaticDir)
	if err != nil || !isDir {
		r.printf("FAIL static directory %s is missing\n", r.opts.StaticDir)
		r.printf("     Fix: create %s and put index.html into it\n", r.opts.StaticDir)
		return false
	}

	index := filepath.Join(r.opts.StaticDir, "index.html")
	if !filex.Exists(index) {
		r.printf("FAIL %s is missing\n", index)
		r.printf("     Fix: move index.html into %s\n", r.opts.StaticDir)
		return false
	}
	r.printf("OK   %s exists\n", index)
	return true
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func status(ok bool) string {
	if ok {
		return "working"
	}
	return "NOT working"
}

// BaseURLFromAddr turns a listen address such as ":5000" into the URL a
// local client would use.
func BaseURLFromAddr(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	switch {
	case strings.HasPrefix(addr, ":"):
		addr = "localhost" + addr
	case strings.HasPrefix(addr, "0.0.0.0:"):
		addr = "localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return "http://" + addr
}
