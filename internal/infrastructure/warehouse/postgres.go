package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/noodlewise/backend/internal/domain"
)

// Warehouse table names.
const (
	tableProducts = "product_catalog"
	tableLimits   = "nutrition_limits"
	tableProfiles = "user_profiles"
	tableSides    = "side_dishes"
)

// Store implements domain.CatalogStore on Postgres. Replace methods run one
// transaction per table: drop, recreate, bulk load via COPY. That gives
// truncate-and-load semantics; a reader between two table replaces of the
// same run can still observe a mixed state, which the design accepts.
type Store struct {
	db *sql.DB
}

// New opens the warehouse connection and verifies it.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection, mainly for tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// replaceTable recreates a table and bulk loads rows inside one transaction.
func (s *Store) replaceTable(ctx context.Context, table, schema string, columns []string, rows [][]interface{}) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, schema)); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy %s: %w", table, err)
	}
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			stmt.Close()
			return fmt.Errorf("copy row into %s: %w", table, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy %s: %w", table, err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	log.Printf("[WAREHOUSE] %s replaced: %d rows", table, len(rows))
	return nil
}

// ReplaceProducts rebuilds the product catalog wholesale.
func (s *Store) ReplaceProducts(ctx context.Context, records []domain.ProductRecord) error {
	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = []interface{}{r.Brand, r.Name, r.Country, r.Price, r.Rating, r.Calories, r.Sodium, r.Protein, r.Link}
	}
	schema := `brand TEXT, name TEXT, country TEXT, price BIGINT, rating DOUBLE PRECISION,
		calories BIGINT, sodium BIGINT, protein BIGINT, link TEXT`
	columns := []string{"brand", "name", "country", "price", "rating", "calories", "sodium", "protein", "link"}
	return s.replaceTable(ctx, tableProducts, schema, columns, rows)
}

// Products reads the full catalog.
func (s *Store) Products(ctx context.Context) ([]domain.ProductRecord, error) {
	query := fmt.Sprintf(`SELECT brand, name, country, price, rating, calories, sodium, protein, link
		FROM %s`, tableProducts)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tableProducts, err)
	}
	defer rows.Close()

	var out []domain.ProductRecord
	for rows.Next() {
		var r domain.ProductRecord
		if err := rows.Scan(&r.Brand, &r.Name, &r.Country, &r.Price, &r.Rating, &r.Calories, &r.Sodium, &r.Protein, &r.Link); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableProducts, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceLimits rebuilds the nutrition reference table.
func (s *Store) ReplaceLimits(ctx context.Context, limits []domain.NutritionLimit) error {
	rows := make([][]interface{}, len(limits))
	for i, l := range limits {
		rows[i] = []interface{}{l.Parameter, l.Cohort, l.DailyLimit}
	}
	return s.replaceTable(ctx, tableLimits,
		"parameter TEXT, cohort TEXT, daily_limit DOUBLE PRECISION",
		[]string{"parameter", "cohort", "daily_limit"}, rows)
}

// Limits reads the nutrition reference table. An absent table is not an
// error: callers fall back to configured defaults.
func (s *Store) Limits(ctx context.Context) ([]domain.NutritionLimit, error) {
	query := fmt.Sprintf("SELECT parameter, cohort, daily_limit FROM %s", tableLimits)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", tableLimits, err)
	}
	defer rows.Close()

	var out []domain.NutritionLimit
	for rows.Next() {
		var l domain.NutritionLimit
		if err := rows.Scan(&l.Parameter, &l.Cohort, &l.DailyLimit); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableLimits, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ReplaceProfiles rebuilds the user profile table.
func (s *Store) ReplaceProfiles(ctx context.Context, profiles []domain.UserProfile) error {
	rows := make([][]interface{}, len(profiles))
	for i, p := range profiles {
		rows[i] = []interface{}{p.Name, p.WeightKg, p.HeightCm, p.Age, p.Gender, p.Goal, p.Preference, p.TargetCalories, p.TargetProtein}
	}
	schema := `name TEXT, weight_kg DOUBLE PRECISION, height_cm DOUBLE PRECISION, age BIGINT,
		gender TEXT, goal TEXT, preference TEXT, target_calories BIGINT, target_protein BIGINT`
	columns := []string{"name", "weight_kg", "height_cm", "age", "gender", "goal", "preference", "target_calories", "target_protein"}
	return s.replaceTable(ctx, tableProfiles, schema, columns, rows)
}

// Profiles reads every user profile.
func (s *Store) Profiles(ctx context.Context) ([]domain.UserProfile, error) {
	query := fmt.Sprintf(`SELECT name, weight_kg, height_cm, age, gender, goal, preference,
		target_calories, target_protein FROM %s`, tableProfiles)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", tableProfiles, err)
	}
	defer rows.Close()

	var out []domain.UserProfile
	for rows.Next() {
		var p domain.UserProfile
		if err := rows.Scan(&p.Name, &p.WeightKg, &p.HeightCm, &p.Age, &p.Gender, &p.Goal, &p.Preference, &p.TargetCalories, &p.TargetProtein); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableProfiles, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProfileByName finds one profile, case-insensitively.
func (s *Store) ProfileByName(ctx context.Context, name string) (*domain.UserProfile, error) {
	query := fmt.Sprintf(`SELECT name, weight_kg, height_cm, age, gender, goal, preference,
		target_calories, target_protein FROM %s WHERE LOWER(name) = LOWER($1)`, tableProfiles)
	var p domain.UserProfile
	err := s.db.QueryRowContext(ctx, query, name).
		Scan(&p.Name, &p.WeightKg, &p.HeightCm, &p.Age, &p.Gender, &p.Goal, &p.Preference, &p.TargetCalories, &p.TargetProtein)
	if err == sql.ErrNoRows || isUndefinedTable(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", name, err)
	}
	return &p, nil
}

// ReplaceSideDishes rebuilds the side dish reference table.
func (s *Store) ReplaceSideDishes(ctx context.Context, sides []domain.SideDish) error {
	rows := make([][]interface{}, len(sides))
	for i, d := range sides {
		rows[i] = []interface{}{d.Name, d.Category, d.Price, d.Calories, d.Protein}
	}
	return s.replaceTable(ctx, tableSides,
		"name TEXT, category TEXT, price BIGINT, calories BIGINT, protein DOUBLE PRECISION",
		[]string{"name", "category", "price", "calories", "protein"}, rows)
}

// SideDishes reads the side dish catalog.
func (s *Store) SideDishes(ctx context.Context) ([]domain.SideDish, error) {
	query := fmt.Sprintf("SELECT name, category, price, calories, protein FROM %s", tableSides)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", tableSides, err)
	}
	defer rows.Close()

	var out []domain.SideDish
	for rows.Next() {
		var d domain.SideDish
		if err := rows.Scan(&d.Name, &d.Category, &d.Price, &d.Calories, &d.Protein); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableSides, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// isUndefinedTable reports the Postgres undefined_table condition (42P01),
// which shows up when a reference table has never been loaded.
func isUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "42P01"
	}
	return strings.Contains(err.Error(), "does not exist")
}
