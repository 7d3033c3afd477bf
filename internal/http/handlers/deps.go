package handlers

import (
	"tradepost/internal/config"
	"tradepost/internal/ledger"
	"tradepost/internal/repos"
	"tradepost/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler   *AuthHandler
	ItemHandler   *ItemHandler
	BrowseHandler *BrowseHandler
	Auth          *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config, lgr *ledger.Ledger) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	journalRepo := repos.NewJournalRepo(db)

	treasury := services.NewTreasuryService(accountRepo)
	authSvc := &services.AuthService{
		Accounts:       accountRepo,
		JWTSecret:      cfg.JWTSecret,
		OpeningBalance: cfg.OpeningBalance,
	}

	return &Deps{
		AuthHandler:   &AuthHandler{Auth: authSvc, Treasury: treasury},
		ItemHandler:   &ItemHandler{Ledger: lgr, Journal: journalRepo},
		BrowseHandler: &BrowseHandler{Ledger: lgr, Journal: journalRepo},
		Auth:          authSvc,
	}
}
