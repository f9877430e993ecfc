package model

// Knowledge is a curated record about a loan, investment, or pension product
type Knowledge struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    string   `json:"category" yaml:"category"`
	Rate        string   `json:"rate,omitempty" yaml:"rate"`
	MaxAmount   string   `json:"maxAmount,omitempty" yaml:"maxAmount"`
	Tenure      string   `json:"tenure,omitempty" yaml:"tenure"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}
