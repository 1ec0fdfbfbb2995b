package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dsemenov/dosetrack/internal/client/models"
)

// printRows renders rows as a plain table: the id first, then the requested
// columns in order. Missing values print as empty cells.
func printRows(rows []*models.Row, cols ...string) {
	if len(rows) == 0 {
		printlnFn("(empty)")
		return
	}

	printlnFn("id\t" + strings.Join(cols, "\t"))
	for _, row := range rows {
		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, row.ID)
		for _, c := range cols {
			v := row.Values[c]
			if v == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprintf("%v", v))
		}
		printlnFn(strings.Join(cells, "\t"))
	}
}

// nowFn is a test seam for the wall clock.
var nowFn = time.Now
