package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/labsite/internal/dbx"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/admins"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/homepage"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/news"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/people"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/publications"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/researchareas"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Admins(db dbx.DBTX) admins.Repository
	Publications(db dbx.DBTX) publications.Repository
	People(db dbx.DBTX) people.Repository
	News(db dbx.DBTX) news.Repository
	ResearchAreas(db dbx.DBTX) researchareas.Repository
	HomePage(db dbx.DBTX) homepage.Repository
}
