package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const pgUniqueViolation = "23505"

var (
	// ErrDuplicate indica violação de unicidade (email, idempotency_key, contact_id+stage_id)
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrNotFound é devolvido por escritas que não encontraram a linha alvo
	ErrNotFound = errors.New("repository: not found")
)

// translate converte erros do driver em erros do pacote, mantendo a operação no contexto
func translate(err error, op string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return errors.WithMessage(ErrDuplicate, op+": "+pqErr.Constraint)
	}

	return errors.Wrap(err, op)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if affected == 0 {
		return errors.WithMessage(ErrNotFound, op)
	}
	return nil
}

func encodeJSON(v map[string]any) ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

func decodeJSON(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
