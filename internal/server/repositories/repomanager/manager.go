package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/labels"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/lists"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/subtasks"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Subtasks(db dbx.DBTX) subtasks.Repository
	Labels(db dbx.DBTX) labels.Repository
	Lists(db dbx.DBTX) lists.Repository
}
