package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func TestReadSheets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.PNG", "web_highlighted_single_a.PNG.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755))

	uploads, err := readSheets(dir)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, "a.PNG", uploads[0].Name)
	assert.Equal(t, []byte("b.jpg"), uploads[1].Data)
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	sheets := []entity.GradedSheet{{FileName: "a.jpg", StudentID: "650000000001", Score: 3, Total: 5}}

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, writeResults(csvPath, sheets))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "650000000001,,,3,5")

	xlsxPath := filepath.Join(dir, "out.xlsx")
	require.NoError(t, writeResults(xlsxPath, sheets))
	data, err = os.ReadFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))
}
