package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/master"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ReadRoster reads the master table from a tab laid out like Master.xlsx
func (c *Client) ReadRoster(spreadsheetID, tab string) (*model.Roster, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("roster tab %q is empty", tab)
	}

	roster, err := master.Parse(master.FromValues(values))
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster tab %q: %w", tab, err)
	}

	return roster, nil
}
