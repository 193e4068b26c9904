package importer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"userhub/internal/models"
	"userhub/internal/repository"
	"userhub/internal/repository/memory"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"first_name", "last_name", "primary_phone", "primary_email"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows_SkipsOnlyHeader(t *testing.T) {
	buf := workbook(t,
		[]any{"Ada", "Lovelace", 9865435632, "ada@example.com"},
		[]any{"Alan", "Turing", "555-0101", "alan@example.com"},
	)

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, []string{"Ada", "Lovelace", "9865435632", "ada@example.com"}, rows[0].Cells)
	assert.Equal(t, "Alan", rows[1].Cells[0])
}

func TestReadRows_HeaderOnly(t *testing.T) {
	_, err := ReadRows(workbook(t))
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestReadRows_NotAWorkbook(t *testing.T) {
	_, err := ReadRows(bytes.NewBufferString("first,last\nada,lovelace\n"))
	assert.ErrorIs(t, err, ErrExtract)
}

func TestReadRows_DropsBlankRowsAndTrailingCells(t *testing.T) {
	buf := workbook(t,
		[]any{"Ada", "Lovelace", "1", "ada@example.com", ""},
		[]any{"", "", "", ""},
		[]any{"Alan", "Turing", "2", "alan@example.com"},
	)

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].Cells, 4)
	assert.Equal(t, 4, rows[1].Number)
}

func TestValidateRow(t *testing.T) {
	ok := ValidateRow(Row{Number: 2, Cells: []string{" Ada ", "Lovelace", "1", "ada@example.com"}})
	require.True(t, ok.Valid())
	assert.Equal(t, models.NewUser{FirstName: "Ada", LastName: "Lovelace", Phone: "1", Email: "ada@example.com"}, *ok.Record)

	short := ValidateRow(Row{Number: 3, Cells: []string{"Ada", "Lovelace", "1"}})
	assert.False(t, short.Valid())
	assert.Equal(t, []RowError{{Row: 3, Field: "primary_email", Reason: ReasonMissingField}}, short.Errors)

	wide := ValidateRow(Row{Number: 5, Cells: []string{"Ada", "Lovelace", "1", "ada@example.com", "admin"}})
	assert.Equal(t, []RowError{{Row: 5, Reason: ReasonInvalidShape}}, wide.Errors)

	padded := ValidateRow(Row{Number: 6, Cells: []string{"Ada", "Lovelace", "1", "ada@example.com", " ", ""}})
	assert.True(t, padded.Valid())

	missing := ValidateRow(Row{Number: 4, Cells: []string{"Ada", " ", "1", "ada@example.com"}})
	assert.Equal(t, []RowError{{Row: 4, Field: "last_name", Reason: ReasonMissingField}}, missing.Errors)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	_, err := Validate([]Row{
		{Number: 2, Cells: []string{"Ada", "Lovelace", "1", "ada@example.com"}},
		{Number: 3, Cells: []string{"Alan", "Turing", "2", "alan@example.com", "extra"}},
		{Number: 4, Cells: []string{"", "Hopper", "3", "grace@example.com"}},
		{Number: 5, Cells: []string{"Ada", "Again", "4", "ADA@example.com"}},
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []RowError{
		{Row: 3, Reason: ReasonInvalidShape},
		{Row: 4, Field: "first_name", Reason: ReasonMissingField},
		{Row: 5, Field: "primary_email", Reason: ReasonDuplicateEmail},
	}, verr.Rows)
	assert.True(t, verr.HasShapeErrors())
	assert.True(t, verr.HasMissingFields())
}

func TestImport_InsertsEveryValidRow(t *testing.T) {
	repo := memory.NewUserRepo()
	im := New(repo, zerolog.Nop())

	s, err := im.Import(context.Background(), workbook(t,
		[]any{"Ada", "Lovelace", "111", "ada@example.com"},
		[]any{"Alan", "Turing", "222", "alan@example.com"},
		[]any{"Grace", "Hopper", "333", "grace@example.com"},
	))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.Inserted)
	assert.Equal(t, 3, repo.Len())

	u, err := repo.GetByEmail(context.Background(), "alan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alan", u.FirstName)
	assert.Equal(t, "Turing", u.LastName)
	assert.Equal(t, "222", u.Phone)
}

func TestImport_ExtraColumnInsertsNothing(t *testing.T) {
	repo := memory.NewUserRepo()
	im := New(repo, zerolog.Nop())

	_, err := im.Import(context.Background(), workbook(t,
		[]any{"Ada", "Lovelace", "111", "ada@example.com"},
		[]any{"Alan", "Turing", "222", "alan@example.com", "admin"},
	))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasShapeErrors())
	assert.Zero(t, repo.Len())
}

func TestImport_BlankTrailingCellIsMissingField(t *testing.T) {
	repo := memory.NewUserRepo()
	im := New(repo, zerolog.Nop())

	_, err := im.Import(context.Background(), workbook(t,
		[]any{"Ada", "Lovelace", "555", ""},
		[]any{"Alan", "Turing", "", ""},
	))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.HasShapeErrors())
	assert.Equal(t, []RowError{
		{Row: 2, Field: "primary_email", Reason: ReasonMissingField},
		{Row: 3, Field: "primary_phone", Reason: ReasonMissingField},
		{Row: 3, Field: "primary_email", Reason: ReasonMissingField},
	}, verr.Rows)
	assert.Zero(t, repo.Len())
}

func TestImport_ExistingEmailInsertsNothing(t *testing.T) {
	repo := memory.NewUserRepo()
	_, err := repo.Create(context.Background(), models.NewUser{FirstName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = New(repo, zerolog.Nop()).Import(context.Background(), workbook(t,
		[]any{"New", "Person", "1", "new@example.com"},
		[]any{"Ada", "Lovelace", "111", "ada@example.com"},
	))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Len())
}
