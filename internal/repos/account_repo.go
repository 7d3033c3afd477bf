package repos

import (
	"fmt"

	"tradepost/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

func (r *AccountRepo) ByEmail(email string) (*domain.Principal, error) {
	var p domain.Principal
	err := r.DB.Get(&p, `SELECT id,email,name,password_hash,balance FROM principals WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AccountRepo) ByID(id string) (*domain.Principal, error) {
	var p domain.Principal
	err := r.DB.Get(&p, `SELECT id,email,name,password_hash,balance FROM principals WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AccountRepo) Create(id, email, name, hash string, balance int64) error {
	_, err := r.DB.Exec(`
		INSERT INTO principals(id,email,name,password_hash,balance)
		VALUES(?,?,?,?,?)
	`, id, email, name, hash, balance)
	return err
}

func (r *AccountRepo) Balance(id string) (int64, error) {
	var balance int64
	err := r.DB.Get(&balance, `SELECT balance FROM principals WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Deposit credits an account unconditionally.
func (r *AccountRepo) Deposit(id string, amount int64) error {
	res, err := r.DB.Exec(`UPDATE principals SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP WHERE id=?`, amount, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no such principal %s", id)
	}
	return nil
}

// Transfer moves amount from one principal to another inside a single
// transaction. The debit is guarded so the payer can never go negative;
// zero rows affected means insufficient funds or an unknown payer.
func (r *AccountRepo) Transfer(from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("non-positive transfer amount %d", amount)
	}
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		UPDATE principals
		SET balance = balance - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND balance >= ?
	`, amount, from, amount)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient funds for %s", from)
	}

	res, err = tx.Exec(`
		UPDATE principals
		SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, amount, to)
	if err != nil {
		return err
	}
	n, _ = res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no such payee %s", to)
	}

	return tx.Commit()
}
