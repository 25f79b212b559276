package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, secret, created_date, user_group_id)
    VALUES ($1, $2, COALESCE($3, CURRENT_TIMESTAMP), $4)
    RETURNING user_id, login, secret, created_date, user_group_id, user_state_id;`

	findUserByLogin = `SELECT user_id, login, secret, created_date, user_group_id, user_state_id
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, secret, created_date, user_group_id, user_state_id
    FROM users
    WHERE user_id = $1;`

	loginExists = `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1);`

	anyInGroup = `SELECT EXISTS (SELECT 1 FROM users WHERE user_group_id = $1);`

	updateUserState = `UPDATE users
    SET user_state_id = $2
    WHERE user_id = $1;`

	findUsersWithoutState = `SELECT user_id, login, secret, created_date, user_group_id, user_state_id
    FROM users
    WHERE user_state_id IS NULL AND created_date < $1
    ORDER BY user_id;`

	findGroupByCode = `SELECT group_id, code, description
    FROM user_groups
    WHERE code = $1;`

	findGroupByID = `SELECT group_id, code, description
    FROM user_groups
    WHERE group_id = $1;`

	findStateByCode = `SELECT state_id, code, description
    FROM user_states
    WHERE code = $1;`
)

// userColumns is the canonical column order shared by every users SELECT.
var userColumns = []string{"user_id", "login", "secret", "created_date", "user_group_id", "user_state_id"}

// buildListUsersQuery constructs the users listing query. With pageSize == 0
// the whole directory is returned; otherwise page (1-based) and pageSize are
// translated into LIMIT/OFFSET.
func buildListUsersQuery(page, pageSize uint64) (string, []any, error) {
	builder := sq.
		Select(userColumns...).
		From("users").
		OrderBy("user_id").
		PlaceholderFormat(sq.Dollar)

	if pageSize > 0 {
		if page == 0 {
			return "", nil, fmt.Errorf("%w: page is 1-based", ErrBuildingSQLQuery)
		}
		builder = builder.
			Limit(pageSize).
			Offset((page - 1) * pageSize)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
