package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeSheetsAPI serves the two Values endpoints the gateway uses.
type fakeSheetsAPI struct {
	mu       sync.Mutex
	values   [][]any
	status   int
	updates  []recordedUpdate
	getPaths []string
}

type recordedUpdate struct {
	Path     string
	InputOpt string
	Values   [][]any
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, `{"error": {"code": 403, "message": "The caller does not have permission"}}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		f.getPaths = append(f.getPaths, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "Job_Application_Tracker!A1:Z10",
			"majorDimension": "ROWS",
			"values":         f.values,
		})
	case http.MethodPut:
		var body struct {
			Values [][]any `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.updates = append(f.updates, recordedUpdate{
			Path:     r.URL.Path,
			InputOpt: r.URL.Query().Get("valueInputOption"),
			Values:   body.Values,
		})
		_, _ = io.WriteString(w, `{"updatedCells": 1}`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeGoogleSheets(t *testing.T, api *fakeSheetsAPI) *GoogleSheets {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	gs, err := NewGoogleSheets(context.Background(), GoogleSheetsConfig{
		SpreadsheetID: "sheet-123",
		SheetName:     "Job_Application_Tracker",
	}, option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	return gs
}

func TestGoogleSheets_ReadAll(t *testing.T) {
	api := &fakeSheetsAPI{values: [][]any{
		{"Job Description", "Company Name", "Auto-Fill"},
		{"Go intern at Acme"},
		{"Rust role", 42, "Done"},
	}}
	gs := newFakeGoogleSheets(t, api)

	table, err := gs.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, []string{"Go intern at Acme"}, table[1])
	assert.Equal(t, []string{"Rust role", "42", "Done"}, table[2])

	require.Len(t, api.getPaths, 1)
	assert.True(t, strings.HasSuffix(api.getPaths[0], "/v4/spreadsheets/sheet-123/values/Job_Application_Tracker!A:Z"), api.getPaths[0])
}

func TestGoogleSheets_ReadAll_NoData(t *testing.T) {
	gs := newFakeGoogleSheets(t, &fakeSheetsAPI{})

	table, err := gs.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestGoogleSheets_ReadAll_PermissionDenied(t *testing.T) {
	gs := newFakeGoogleSheets(t, &fakeSheetsAPI{status: http.StatusForbidden})

	_, err := gs.ReadAll(context.Background())
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "Job_Application_Tracker!A:Z", readErr.Range)
}

func TestGoogleSheets_WriteCell(t *testing.T) {
	api := &fakeSheetsAPI{}
	gs := newFakeGoogleSheets(t, api)

	require.NoError(t, gs.WriteCell(context.Background(), 7, 27, "Done"))

	require.Len(t, api.updates, 1)
	update := api.updates[0]
	assert.True(t, strings.HasSuffix(update.Path, "/values/Job_Application_Tracker!AB7"), update.Path)
	assert.Equal(t, "RAW", update.InputOpt)
	assert.Equal(t, [][]any{{"Done"}}, update.Values)
}

func TestGoogleSheets_WriteCell_Error(t *testing.T) {
	gs := newFakeGoogleSheets(t, &fakeSheetsAPI{status: http.StatusForbidden})

	err := gs.WriteCell(context.Background(), 2, 0, "x")
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "Job_Application_Tracker!A2", writeErr.Cell)
}

func TestNewGoogleSheets_RequiresID(t *testing.T) {
	_, err := NewGoogleSheets(context.Background(), GoogleSheetsConfig{}, option.WithoutAuthentication())
	assert.Error(t, err)
}
