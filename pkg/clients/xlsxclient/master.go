package xlsxclient

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/duty-roster/pkg/core/master"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ErrMasterNotFound is returned when the master workbook does not exist
var ErrMasterNotFound = errors.New("master file not found")

// ReadMaster loads the roster from the first sheet of a master workbook
func ReadMaster(path string) (*model.Roster, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMasterNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat master file: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("master file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	roster, err := master.Parse(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse master file: %w", err)
	}

	return roster, nil
}
