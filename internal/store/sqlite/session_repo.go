package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"studyvibe/internal/domain"
	"studyvibe/internal/security"
)

// SessionRepo persists one serialized session blob per user, encrypted at
// rest.
type SessionRepo struct {
	db  *sql.DB
	enc *security.Encryptor
}

func NewSessionRepo(db *sql.DB, enc *security.Encryptor) *SessionRepo {
	return &SessionRepo{db: db, enc: enc}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) Save(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	payload, err := r.enc.Encrypt(string(raw))
	if err != nil {
		return fmt.Errorf("encrypt session: %w", err)
	}
	query := `
		INSERT INTO sessions (user_id, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, u.ID, payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Load(ctx context.Context, userID string) (*domain.User, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM sessions WHERE user_id = ?`, userID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	raw, err := r.enc.Decrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("decrypt session: %w", err)
	}
	u := &domain.User{}
	if err := json.Unmarshal([]byte(raw), u); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return u, nil
}

func (r *SessionRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
