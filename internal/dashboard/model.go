package dashboard

// Summary is the aggregate shown on the landing screen. Scope is "clinic"
// for front-desk roles or the professional id for a professional's own
// view.
type Summary struct {
	Date          string `json:"date"`
	Scope         string `json:"scope"`
	Total         int    `json:"total"`
	Scheduled     int    `json:"scheduled"`
	Confirmed     int    `json:"confirmed"`
	Done          int    `json:"done"`
	Cancelled     int    `json:"cancelled"`
	NoShow        int    `json:"no_show"`
	TriagePending int    `json:"triage_pending"`
}
