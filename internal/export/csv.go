package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

// row is the published CSV contract for a lead. The internal ID is not
// exported.
type row struct {
	Name    string `csv:"Name"`
	Phone   string `csv:"Phone"`
	Address string `csv:"Address"`
	Website string `csv:"Website"`
}

// WriteCSV writes leads to w with the Name,Phone,Address,Website header.
// The header is written even when there are no leads.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(row{}); err != nil {
		return eris.Wrap(err, "export: encode header")
	}
	for _, l := range leads {
		r := row{Name: l.Name, Phone: l.Phone, Address: l.Address, Website: l.Website}
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "export: encode lead")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

// Filename derives the export filename from the niche, replacing whitespace
// runs with underscores.
func Filename(niche string) string {
	return fmt.Sprintf("leads_%s.csv", strings.Join(strings.Fields(niche), "_"))
}
