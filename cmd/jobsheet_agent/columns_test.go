package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsheet-sync/internal/sheets"
	"github.com/jonathan/jobsheet-sync/internal/syncer"
)

func TestDescribeColumns(t *testing.T) {
	path := writeWorkbook(t, "Job_Application_Tracker", [][]string{
		{"Job Description", "Company Name", "Role", "Auto-Fill"},
		{"Backend role at Acme", "", "", ""},
		{"Frontend role at Initech", "Initech", "FE", "Done"},
		{"", "", "", ""},
		{"Data role", "", "", ""},
	})
	store, err := sheets.NewWorkbook(path, "Job_Application_Tracker")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, describeColumns(context.Background(), &out, store, syncer.Options{}))
	output := out.String()

	assert.Contains(t, output, "Job Description  [description]")
	assert.Contains(t, output, "Company Name  [output]")
	assert.Contains(t, output, "Auto-Fill  [status]")
	assert.Contains(t, output, "Fields with no column")
	assert.Contains(t, output, "Employement Type")
	assert.NotContains(t, output, "rows cannot be marked done")
	assert.Contains(t, output, "2 of 4 data row(s) pending.")
}

func TestDescribeColumns_MissingColumns(t *testing.T) {
	path := writeWorkbook(t, "Job_Application_Tracker", [][]string{
		{"Posting", "Company Name"},
		{"Backend role", ""},
	})
	store, err := sheets.NewWorkbook(path, "Job_Application_Tracker")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, describeColumns(context.Background(), &out, store, syncer.Options{}))
	output := out.String()

	assert.Contains(t, output, `No "Job Description" column; column A is read as the description.`)
	assert.Contains(t, output, `No "Auto-Fill" column; rows cannot be marked done.`)
	assert.Contains(t, output, "1 of 1 data row(s) pending.")
}

func TestDescribeColumns_CustomNames(t *testing.T) {
	path := writeWorkbook(t, "Job_Application_Tracker", [][]string{
		{"Notes", "Posting", "Synced"},
		{"", "Backend role", "Done"},
	})
	store, err := sheets.NewWorkbook(path, "Job_Application_Tracker")
	require.NoError(t, err)

	var out bytes.Buffer
	opts := syncer.Options{DescriptionColumn: "Posting", StatusColumn: "Synced"}
	require.NoError(t, describeColumns(context.Background(), &out, store, opts))

	assert.Contains(t, out.String(), "Posting  [description]")
	assert.Contains(t, out.String(), "0 of 1 data row(s) pending.")
}

func TestDescribeColumns_ReadError(t *testing.T) {
	path := writeWorkbook(t, "Other", [][]string{{"x"}})
	store, err := sheets.NewWorkbook(path, "Job_Application_Tracker")
	require.NoError(t, err)

	var out bytes.Buffer
	err = describeColumns(context.Background(), &out, store, syncer.Options{})
	assert.Error(t, err)
}
