package importer

import (
	"context"
	"io"
	"time"

	"userhub/internal/models"

	"github.com/rs/zerolog"
)

// Inserter stores a batch of users atomically.
type Inserter interface {
	BulkCreate(ctx context.Context, users []models.NewUser) (int, error)
}

type Summary struct {
	Total    int           `json:"total"`
	Inserted int           `json:"inserted"`
	Duration time.Duration `json:"duration"`
}

type Importer struct {
	users Inserter
	log   zerolog.Logger
}

func New(users Inserter, log zerolog.Logger) *Importer {
	return &Importer{users: users, log: log}
}

// Import parses the workbook, validates every row and inserts all rows in
// one batch. Nothing is inserted unless every row is valid.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Summary, error) {
	start := time.Now()

	rows, err := ReadRows(r)
	if err != nil {
		return Summary{}, err
	}
	im.log.Debug().Int("rows", len(rows)).Msg("import: rows extracted")

	records, err := Validate(rows)
	if err != nil {
		return Summary{Total: len(rows)}, err
	}

	n, err := im.users.BulkCreate(ctx, records)
	if err != nil {
		return Summary{Total: len(rows)}, err
	}

	s := Summary{Total: len(rows), Inserted: n, Duration: time.Since(start)}
	im.log.Info().Int("total", s.Total).Int("inserted", s.Inserted).Dur("duration", s.Duration).Msg("import: users inserted")
	return s, nil
}
