package models

// BarBookContent is the bar book document: shift checklists, daily
// tasks and the printable stock table. Stored as a single JSON
// document; the server treats the strings as opaque display text.
type BarBookContent struct {
	Checklists BarBookChecklists `json:"checklists"`
	DailyTasks []BarBookTask     `json:"daily_tasks"`
	StockTable BarBookTable      `json:"stock_table"`
}

// BarBookChecklists groups the three shift checklists.
type BarBookChecklists struct {
	Opening BarBookChecklist `json:"opening"`
	Closing BarBookChecklist `json:"closing"`
	Deep    BarBookChecklist `json:"deep"`
}

// BarBookChecklist is a titled list of checkable entries.
type BarBookChecklist struct {
	Title string        `json:"title"`
	Items []BarBookTask `json:"items"`
}

// BarBookTask is a single checklist or daily task entry.
type BarBookTask struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// BarBookTable is a free-form table of stock notes.
type BarBookTable struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// EmptyBarBookContent returns the empty bar book structure.
func EmptyBarBookContent() BarBookContent {
	return BarBookContent{
		DailyTasks: []BarBookTask{},
		StockTable: BarBookTable{Headers: []string{}, Rows: [][]string{}},
	}
}
