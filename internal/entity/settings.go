package entity

// Setting represents one row of the key/value setting table.
type Setting struct {
	Key   string `db:"setting_key" json:"key"`
	Value string `db:"setting_value" json:"value"`
}
