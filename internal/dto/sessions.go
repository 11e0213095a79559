package dto

import "github.com/Zxun2/teammates/internal/models"

// SessionsTableColumn is one header cell of the sessions table.
type SessionsTableColumn struct {
	Header  string        `json:"header"`
	SortBy  models.SortBy `json:"sortBy,omitempty"`
	Tooltip string        `json:"tooltip,omitempty"`
}

// SessionsTableCell is one rendered body cell.
type SessionsTableCell struct {
	Value   string `json:"value"`
	Tooltip string `json:"tooltip,omitempty"`
}

// SessionsTableRowView is a display-ready row plus the actions available
// for it; the client emits the action back when a row button is pressed.
type SessionsTableRowView struct {
	Cells   []SessionsTableCell    `json:"cells"`
	Actions []models.SessionAction `json:"actions"`
}

// SessionsTable is the assembled, sorted table.
type SessionsTable struct {
	Columns []SessionsTableColumn  `json:"columns"`
	Rows    []SessionsTableRowView `json:"rows"`
	SortBy  models.SortBy          `json:"sortBy"`
	Order   models.SortOrder       `json:"sortOrder"`
}
