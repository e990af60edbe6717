package drug

import (
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// driverName registers a sqlite3 driver variant that exposes Normalize as
// the SQL function normalize(), so the store can compare normalized column
// values against normalized query substrings at query time.
const driverName = "sqlite3_druglist"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("normalize", Normalize, true)
		},
	})
}

// Record is one reference row as seen by ingredient lookups.
type Record struct {
	ProductA    string
	IngredientA string
	ProductB    string
	IngredientB string
}

// Interaction is one reference row as seen by interaction lookups.
type Interaction struct {
	ProductA string
	ProductB string
	Detail   string
}

// Store is a read-only handle to the druglist reference table. It is opened
// once per process and is safe for concurrent reads; nothing ever writes to
// it at runtime.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open druglist db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping druglist db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Rows returns the table size, used for a startup sanity log line.
func (s *Store) Rows() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM druglist`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count druglist: %w", err)
	}
	return n, nil
}

// Search returns every distinct row where the normalized query is a
// substring of any of the four normalized name columns. Queries that
// normalize to fewer than 2 characters match nothing: a 1-character
// substring would hit most of the table.
func (s *Store) Search(query string) ([]Record, error) {
	q := Normalize(query)
	if len([]rune(q)) < 2 {
		return nil, nil
	}
	pattern := "%" + q + "%"
	rows, err := s.db.Query(`
		SELECT DISTINCT 제품명A, 성분명A, 제품명B, 성분명B
		FROM druglist
		WHERE normalize(제품명A) LIKE ? OR normalize(성분명A) LIKE ?
		   OR normalize(제품명B) LIKE ? OR normalize(성분명B) LIKE ?`,
		pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search druglist: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var pa, ia, pb, ib sql.NullString
		if err := rows.Scan(&pa, &ia, &pb, &ib); err != nil {
			return nil, fmt.Errorf("scan druglist row: %w", err)
		}
		out = append(out, Record{
			ProductA:    pa.String,
			IngredientA: ia.String,
			ProductB:    pb.String,
			IngredientB: ib.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate druglist rows: %w", err)
	}
	return out, nil
}

// Interactions returns every distinct row where one drug matches the A-side
// name columns and the other matches the B-side, in either order. The data
// encodes unordered pairs under an arbitrary A/B label, so both orientations
// are checked. Both queries must already be >= 2 normalized characters; the
// classifier enforces that before calling.
func (s *Store) Interactions(drugA, drugB string) ([]Interaction, error) {
	pa := "%" + Normalize(drugA) + "%"
	pb := "%" + Normalize(drugB) + "%"
	rows, err := s.db.Query(`
		SELECT DISTINCT 제품명A, 제품명B, 상세정보
		FROM druglist
		WHERE ((normalize(제품명A) LIKE ? OR normalize(성분명A) LIKE ?)
		   AND (normalize(제품명B) LIKE ? OR normalize(성분명B) LIKE ?))
		   OR ((normalize(제품명A) LIKE ? OR normalize(성분명A) LIKE ?)
		   AND (normalize(제품명B) LIKE ? OR normalize(성분명B) LIKE ?))`,
		pa, pa, pb, pb, pb, pb, pa, pa)
	if err != nil {
		return nil, fmt.Errorf("search interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var a, b, detail sql.NullString
		if err := rows.Scan(&a, &b, &detail); err != nil {
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}
		out = append(out, Interaction{ProductA: a.String, ProductB: b.String, Detail: detail.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction rows: %w", err)
	}
	return out, nil
}
