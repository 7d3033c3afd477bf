package domain

type Principal struct {
	ID      string `db:"id" json:"id"`
	Email   string `db:"email" json:"email"`
	Name    string `db:"name" json:"name"`
	Hash    string `db:"password_hash" json:"-"`
	Balance int64  `db:"balance" json:"balance"`
}
