package model

// TableView is one user's saved presentation of one table.
type TableView struct {
	UserID   string         `json:"userId"`
	Table    string         `json:"table"`
	Columns  []ColumnConfig `json:"columns"`
	Settings ViewSettings   `json:"settings"`
}

// ColumnConfig is the user-adjustable presentation of a single column.
type ColumnConfig struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsVisible bool   `json:"isVisible"`
	Width     int    `json:"width"`
	Order     int    `json:"order"`
}

// ViewSettings toggles table chrome and which filters apply.
type ViewSettings struct {
	ShowHeader         bool   `json:"showHeader"`
	ShowColumnFilter   bool   `json:"showColumnFilter"`
	ShowAdvancedSearch bool   `json:"showAdvancedSearch"`
	TableHeight        string `json:"tableHeight"`
}

// Table heights.
const (
	TableHeightFlexible = "Flexible"
	TableHeightFixed    = "Fixed"
)

// DefaultViewSettings returns the settings of a table nobody has adjusted.
func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		ShowHeader:         true,
		ShowColumnFilter:   true,
		ShowAdvancedSearch: true,
		TableHeight:        TableHeightFlexible,
	}
}
