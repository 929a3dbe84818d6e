package service

import "time"

// PointSink is a catalog-priced item that removes coins from circulation.
// Catalog entries are configuration, not database rows.
type PointSink struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Active      bool   `json:"active"`
	UnlockLevel int    `json:"unlock_level"` // 0 means no level gate

	// SeasonalMonths, when non-empty, replaces the Active flag: the entry is
	// offered only during the listed calendar months.
	SeasonalMonths []time.Month `json:"-"`
}

// AvailablePointSinks filters the catalog for one participant at one
// moment: level gate first, then seasonal window or active flag.
func AvailablePointSinks(catalog []PointSink, participantLevel int, now time.Time) []PointSink {
	available := make([]PointSink, 0, len(catalog))
	month := now.UTC().Month()

	for _, sink := range catalog {
		if sink.UnlockLevel > 0 && participantLevel < sink.UnlockLevel {
			continue
		}

		if len(sink.SeasonalMonths) > 0 {
			inSeason := false
			for _, m := range sink.SeasonalMonths {
				if m == month {
					inSeason = true
					break
				}
			}
			if !inSeason {
				continue
			}
		} else if !sink.Active {
			continue
		}

		available = append(available, sink)
	}

	return available
}
