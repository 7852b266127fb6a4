package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres için database/sql sürücüsü
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Hata değerleri
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Desteklenen sürücüler
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// dialect, sürücüye göre değişen SQL parçalarını tutar
type dialect struct {
	driver   string
	autoID   string
	refID    string
	numbered bool
}

var dialects = map[string]dialect{
	DriverSQLite:   {driver: DriverSQLite, autoID: "INTEGER PRIMARY KEY AUTOINCREMENT", refID: "INTEGER"},
	DriverPostgres: {driver: DriverPostgres, autoID: "BIGSERIAL PRIMARY KEY", refID: "BIGINT", numbered: true},
}

// rebind, ? yer tutucularını postgres için $n biçimine çevirir
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id ` + d.autoID + `,
			username TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id ` + d.autoID + `,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zipcode TEXT NOT NULL,
			total_amount NUMERIC NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id ` + d.autoID + `,
			order_id ` + d.refID + ` NOT NULL REFERENCES orders(id),
			method TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

// SQLDatabase, kullanıcı tablosunu, sipariş defterini, ödeme kayıtlarını ve
// oturumları tutan SQL veritabanı
type SQLDatabase struct {
	db      *sql.DB
	dialect dialect
}

// NewDatabase, verilen sürücü ve DSN ile veritabanını açar ve tabloları oluşturur
func NewDatabase(ctx context.Context, driver, dsn string) (*SQLDatabase, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if d.driver == DriverSQLite {
		// SQLite tek yazıcı destekler
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	for _, stmt := range d.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	log.Printf("Database.NewDatabase - Opened %s database", driver)
	return &SQLDatabase{db: db, dialect: d}, nil
}

// Close, bağlantıyı kapatır
func (s *SQLDatabase) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB, test ve bakım işleri için alttaki sql.DB'yi döndürür
func (s *SQLDatabase) DB() *sql.DB { return s.db }

// --- User Functions ---

// CreateUser, yeni bir kullanıcı ekler. E-posta zaten kayıtlıysa ErrDuplicateEmail döner.
func (s *SQLDatabase) CreateUser(ctx context.Context, user *models.User) error {
	query := s.dialect.rebind(`INSERT INTO users (username, email, password) VALUES (?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByEmail, e-posta adresine göre kullanıcıyı döndürür
func (s *SQLDatabase) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := s.dialect.rebind(`SELECT id, username, email, password FROM users WHERE email = ?`)
	var u models.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetAllUsers, tüm kullanıcıları id sırasıyla döndürür
func (s *SQLDatabase) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, email, password FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser, kullanıcıyı siler
func (s *SQLDatabase) DeleteUser(ctx context.Context, userID int) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM users WHERE id = ?`), userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Order Functions ---

// CreateOrder, sipariş defterine tek bir satır ekler. Kayıtlar sonradan
// güncellenmez ya da silinmez.
func (s *SQLDatabase) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	query := s.dialect.rebind(`INSERT INTO orders
		(first_name, last_name, email, address, city, state, zipcode, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, query,
		order.FirstName,
		order.LastName,
		order.Email,
		order.Address,
		order.City,
		order.State,
		order.Zipcode,
		order.TotalAmount,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

const orderColumns = `id, first_name, last_name, email, address, city, state, zipcode, total_amount, created_at`

func scanOrder(scan func(dest ...any) error) (models.Order, error) {
	var o models.Order
	var created any
	err := scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Address, &o.City, &o.State, &o.Zipcode, &o.TotalAmount, &created)
	if err != nil {
		return o, err
	}
	o.CreatedAt, err = parseTimestamp(created)
	return o, err
}

// GetOrderByID, id'ye göre siparişi döndürür
func (s *SQLDatabase) GetOrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+orderColumns+` FROM orders WHERE id = ?`), orderID)
	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetAllOrders, tüm siparişleri en yeniden eskiye döndürür
func (s *SQLDatabase) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// --- Payment Functions ---

// RecordPayment, bir ödeme durumunu ekler. Sipariş satırına dokunmaz.
func (s *SQLDatabase) RecordPayment(ctx context.Context, payment *models.Payment) error {
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	query := s.dialect.rebind(`INSERT INTO payments (order_id, method, status, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, query, payment.OrderID, payment.Method, payment.Status, payment.CreatedAt).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

// GetLatestPayment, siparişin en son ödeme kaydını döndürür
func (s *SQLDatabase) GetLatestPayment(ctx context.Context, orderID int) (*models.Payment, error) {
	query := s.dialect.rebind(`SELECT id, order_id, method, status, created_at FROM payments
		WHERE order_id = ? ORDER BY id DESC LIMIT 1`)
	var p models.Payment
	var created any
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(&p.ID, &p.OrderID, &p.Method, &p.Status, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if p.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// CountRows, yönetim paneli için tablo satır sayısını döndürür
func (s *SQLDatabase) CountRows(ctx context.Context, table string) (int, error) {
	switch table {
	case "users", "orders", "payments":
	default:
		return 0, fmt.Errorf("count rows: unknown table %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// isUniqueViolation, sürücüden bağımsız olarak UNIQUE ihlalini tanır
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// parseTimestamp, sürücülerin döndürdüğü farklı zaman biçimlerini çözer
func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case nil:
		return time.Time{}, nil
	case []byte:
		return parseTimestamp(string(t))
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", t)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}
