package postgres

import "time"

type teamTableModel struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	ShortName    string    `db:"short_name"`
	Abbreviation string    `db:"abbreviation"`
	BadgeURL     string    `db:"badge_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	ShortName    string `db:"short_name"`
	Abbreviation string `db:"abbreviation"`
	BadgeURL     string `db:"badge_url"`
}
