package migration

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

//go:embed seed.yaml
var seedFile []byte

// Status resume o estado das migrações no banco
type Status struct {
	Version uint
	Dirty   bool
	Applied bool
}

// New cria a instância do golang-migrate com as migrações embutidas no binário
func New(dsn string) (*migrate.Migrate, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "migration: sub fs")
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, errors.Wrap(err, "migration: iofs source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, normalizeDSN(dsn))
	if err != nil {
		return nil, errors.Wrap(err, "migration: new instance")
	}

	return m, nil
}

// golang-migrate só registra o driver "postgres"; aceitamos também postgresql://
func normalizeDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	return dsn
}

// Up aplica todas as migrações pendentes; sem mudanças não é erro
func Up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migration: up")
	}
	return nil
}

func Down(m *migrate.Migrate, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := m.Steps(-steps); err != nil {
		return errors.Wrap(err, "migration: down")
	}
	return nil
}

func CurrentStatus(m *migrate.Migrate) (Status, error) {
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return Status{}, nil
		}
		return Status{}, errors.Wrap(err, "migration: version")
	}
	return Status{Version: version, Dirty: dirty, Applied: true}, nil
}

// Files lista as migrações "up" embutidas, em ordem
func Files() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
