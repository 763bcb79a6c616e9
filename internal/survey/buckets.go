package survey

import (
	"slices"
	"strings"

	"github.com/san-kum/skillwall/internal/show"
)

// ParseSkills splits a comma-separated cell into trimmed, lower-cased tags.
func ParseSkills(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(cell, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

// BuildBuckets counts, for every non-reserved phase, the rows whose teach
// and learn lists name the phase key (case-insensitively).
func BuildBuckets(phases []show.Phase, rows []Row) show.Buckets {
	buckets := make(show.Buckets)
	for _, p := range phases {
		if !p.Reserved() {
			buckets[p.Key] = show.Bucket{}
		}
	}

	for _, row := range rows {
		teach := ParseSkills(row.Teach)
		learn := ParseSkills(row.Learn)
		for _, p := range phases {
			if p.Reserved() {
				continue
			}
			key := strings.ToLower(p.Key)
			b := buckets[p.Key]
			if slices.Contains(teach, key) {
				b.Teach++
			}
			if slices.Contains(learn, key) {
				b.Learn++
			}
			buckets[p.Key] = b
		}
	}
	return buckets
}

// DemoRows is the fallback dataset shown when the sheet cannot be loaded.
func DemoRows() []Row {
	return []Row{
		{Teach: "Fabrication, 3D Printing", Learn: "Laser Cutting"},
		{Teach: "Computer-aided Design", Learn: "Machining"},
		{Teach: "Sewing & Textiles", Learn: "Fabrication"},
	}
}
