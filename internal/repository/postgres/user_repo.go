package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"userhub/internal/models"
	"userhub/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type UserRepo struct{ db DB }

func NewUserRepo(db DB) repository.UserRepository { return &UserRepo{db: db} }

const userColumns = `id::text, first_name, COALESCE(last_name, ''), primary_email, COALESCE(primary_phone, ''),
		COALESCE(country_code, ''), COALESCE(address, ''), COALESCE(pin, ''), COALESCE(auth_token, ''),
		last_login_at, created_at, updated_at, deactivated_at`

var copyColumns = []string{"id", "first_name", "last_name", "primary_email", "primary_phone", "country_code", "address", "pin"}

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.CountryCode, &u.Address, &u.PinHash, &u.AuthToken,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &u.DeactivatedAt,
	)
}

// List returns one page of users matching f, ordered by f.Sort.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]models.User, error) {
	f = f.Normalized()
	whereSQL, args := buildUserWhere(f.Q)
	sortCol, sortOrd := sanitizeSort(f.Sort)

	sql := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, userColumns, whereSQL, sortCol, sortOrd, len(args)+1, len(args)+2)
	args = append(args, f.Size, f.Offset())

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Count returns the number of users matching the same predicate List uses.
func (r *UserRepo) Count(ctx context.Context, f repository.UserFilter) (int, error) {
	whereSQL, args := buildUserWhere(f.Q)
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users `+whereSQL, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE primary_email = $1`, email), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// RecordLogin stores the freshly issued token and the login time.
func (r *UserRepo) RecordLogin(ctx context.Context, id, token string, at time.Time) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE users
		SET auth_token=$1, last_login_at=$2, updated_at=$2
		WHERE id=$3
	`, token, at, id)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) Create(ctx context.Context, nu models.NewUser) (*models.User, error) {
	id, err := newID(nu.ID)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (id, first_name, last_name, primary_email, primary_phone, country_code, address, pin)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+userColumns,
		id, nu.FirstName, nullIfEmpty(nu.LastName), nu.Email, nullIfEmpty(nu.Phone),
		nullIfEmpty(nu.CountryCode), nullIfEmpty(nu.Address), nullIfEmpty(nu.PinHash)), &u)
	if err != nil {
		return nil, mapWriteErr("create user", err)
	}
	return &u, nil
}

// BulkCreate copies all users inside one transaction. Either every row is
// stored or none is.
func (r *UserRepo) BulkCreate(ctx context.Context, users []models.NewUser) (n int, err error) {
	if len(users) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(users))
	for _, u := range users {
		id, err := newID(u.ID)
		if err != nil {
			return 0, err
		}
		rows = append(rows, []any{
			id, u.FirstName, nullIfEmpty(u.LastName), u.Email, nullIfEmpty(u.Phone),
			nullIfEmpty(u.CountryCode), nullIfEmpty(u.Address), nullIfEmpty(u.PinHash),
		})
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin bulk insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"users"}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, mapWriteErr("bulk insert", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, mapWriteErr("commit bulk insert", err)
	}
	return int(copied), nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildUserWhere composes the WHERE clause shared by List and Count.
func buildUserWhere(q string) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(q); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		like := " ILIKE $" + itoa(len(args)) + ` ESCAPE '\'`
		clauses = append(clauses, "(first_name"+like+" OR last_name"+like+
			" OR primary_email"+like+" OR primary_phone"+like+")")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes q match literally inside an ILIKE pattern.
func escapeLike(q string) string { return likeEscaper.Replace(q) }

var sortColumns = map[string]string{
	"first_name":    "first_name",
	"last_name":     "last_name",
	"email":         "primary_email",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"last_login_at": "last_login_at",
}

// sanitizeSort maps a sort key ("-" prefix for descending) to a column and
// direction. Unknown keys fall back to newest first.
func sanitizeSort(s string) (string, string) {
	s = strings.ToLower(strings.TrimSpace(s))
	ord := "ASC"
	if strings.HasPrefix(s, "-") {
		ord = "DESC"
		s = strings.TrimPrefix(s, "-")
	}
	col, ok := sortColumns[s]
	if !ok {
		return "created_at", "DESC"
	}
	return col, ord
}

func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func newID(s string) (pgtype.UUID, error) {
	id := uuid.New()
	if s != "" {
		parsed, err := uuid.Parse(s)
		if err != nil {
			return pgtype.UUID{}, fmt.Errorf("invalid user id %q: %w", s, err)
		}
		id = parsed
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func itoa(i int) string { return strconv.Itoa(i) }
