package entity

// StatusCount is one slice of the request status breakdown.
type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Dashboard is the aggregate shown on the admin and volunteer home pages.
//
// TimeSeries starts with the header row ["Day","Funds"]; each following row is
// ["day/month", amount].
type Dashboard struct {
	TotalUsers      int64           `json:"totalUsers"`
	TotalRequests   int64           `json:"totalRequests"`
	TotalFunds      int64           `json:"totalFunds"`
	StatusBreakdown []StatusCount   `json:"statusBreakdown"`
	TimeSeries      [][]interface{} `json:"timeSeries"`
}
