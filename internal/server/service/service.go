package service

// M is an arbitrary map.
type M map[string]any

type (
	// CreateItemParams are the fields accepted when creating an item.
	// Date accepts most common formats, e.g. 2025-01-05 or RFC3339.
	CreateItemParams struct {
		Title        string `json:"title"`
		Location     string `json:"location"`
		Category     string `json:"category"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		Neighborhood string `json:"neighborhood"`
	}

	// ToggleDoneParams are the fields accepted when toggling an item done flag.
	ToggleDoneParams struct {
		Done bool `json:"done"`
	}

	// AddCommentParams are the fields accepted when commenting an item.
	AddCommentParams struct {
		Text string `json:"text"`
	}
)
