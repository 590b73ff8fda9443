package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads_Dentistas.csv")
	result := model.SearchResult{
		Leads: []model.Lead{
			{ID: "x", Name: "Acme", Phone: "555-0100", Address: "Main St", Website: "acme.com"},
		},
	}

	require.NoError(t, writeCSVFile(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Phone,Address,Website\nAcme,555-0100,Main St,acme.com\n", string(data))
}

func TestWriteCSVFile_BadPath(t *testing.T) {
	err := writeCSVFile(filepath.Join(t.TempDir(), "missing", "out.csv"), model.SearchResult{})
	require.Error(t, err)
}
