package dc

import (
	"fmt"

	"github.com/clas12-ai/dctrack/internal/bank"
)

// TrackInfo is an external per-track annotation from the conventional
// reconstruction, joined to candidate tracks by id.
type TrackInfo struct {
	TrackID int
	Charge  int
	Sector  int
	Chi2    float64
}

func (ti TrackInfo) String() string {
	return fmt.Sprintf("trackinfo id=%d sector=%d charge=%+d chi2=%.3f", ti.TrackID, ti.Sector, ti.Charge, ti.Chi2)
}

// readTrackInfos parses every row of a track annotation bank.
func readTrackInfos(b bank.Bank) []TrackInfo {
	out := make([]TrackInfo, 0, b.Rows())
	for row := 0; row < b.Rows(); row++ {
		out = append(out, TrackInfo{
			TrackID: b.Int(bank.ColID, row),
			Charge:  b.Int(bank.ColCharge, row),
			Sector:  b.Int(bank.ColSector, row),
			Chi2:    b.Float(bank.ColChi2, row),
		})
	}
	return out
}
