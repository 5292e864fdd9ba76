package diary

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/samuel-girma/site-diary/internal/textclean"
)

var (
	reDateDMY   = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	reDateYMD   = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	reDateWords = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)
	reNonSpace  = regexp.MustCompile(`\s+`)
)

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "sept": "09", "oct": "10",
	"nov": "11", "dec": "12",
}

// Normalize converts a raw extracted record into a structurally valid Diary.
// It is total: anything missing or malformed degrades to an empty/default
// value, and an unexpected shape anywhere degrades to an all-default record
// rather than failing the review session.
func Normalize(raw map[string]any) (d Diary) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("diary.normalize.recovered", "panic", r)
			d = New()
		}
	}()

	d = New()
	if raw == nil {
		return d
	}

	d.Project = textclean.Clean(asString(raw["project"]))
	d.Employer = textclean.Clean(asString(raw["employer"]))
	d.Consultant = textclean.Clean(asString(raw["consultant"]))
	d.Contractor = textclean.Clean(asString(raw["contractor"]))
	d.Location = textclean.Clean(asString(raw["location"]))
	d.NearMiss = textclean.Clean(asString(raw["near_miss"]))
	d.Obstruction = textclean.Clean(asString(raw["obstruction"]))
	d.EngineersNote = textclean.Clean(asString(raw["engineers_note"]))
	d.PreparedBy = textclean.Clean(asString(raw["prepared_by"]))
	d.CheckedBy = textclean.Clean(asString(raw["checked_by"]))
	d.ApprovedBy = textclean.Clean(asString(raw["approved_by"]))
	d.DocumentNumber = textclean.Clean(asString(raw["document_number"]))
	d.PageNumber = textclean.Clean(asString(raw["page_number"]))
	d.Revision = textclean.Clean(asString(raw["revision"]))

	if w := textclean.Clean(asString(raw["weather"])); w != "" {
		d.Weather = w
	}

	d.Date = NormalizeDate(asString(raw["date"]))
	d.TimeMorning = asBool(raw["time_morning"])
	d.TimeAfternoon = asBool(raw["time_afternoon"])

	d.Activities = normalizeActivities(asMapSlice(raw["activities"]))
	d.Equipment = normalizeEquipment(asMapSlice(raw["equipment"]))
	d.Personnel = normalizePersonnel(asMapSlice(raw["personnel"]))
	d.Materials = normalizeMaterials(asMapSlice(raw["materials"]))
	d.UnsafeActs = normalizeUnsafeActs(asMapSlice(raw["unsafe_acts"]))

	return d
}

// NormalizeDate reformats a date as zero-padded DD-MM-YYYY when one of the
// known positional patterns matches; otherwise it returns the trimmed input
// unchanged. Best effort only — Validate is where strictness lives.
func NormalizeDate(s string) string {
	if s == "" || s == "null" {
		return ""
	}

	if m := reDateDMY.FindStringSubmatch(s); m != nil {
		return pad2(m[1]) + "-" + pad2(m[2]) + "-" + m[3]
	}
	if m := reDateYMD.FindStringSubmatch(s); m != nil {
		return pad2(m[3]) + "-" + pad2(m[2]) + "-" + m[1]
	}
	if m := reDateWords.FindStringSubmatch(s); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[2])]; ok {
			return pad2(m[1]) + "-" + month + "-" + m[3]
		}
	}
	return strings.TrimSpace(s)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func normalizeActivities(items []map[string]any) []Activity {
	var out []Activity
	for i, item := range items {
		a := Activity{
			SN:          snOrPosition(item["sn"], i),
			Description: textclean.Clean(asString(item["description"])),
			Location:    textclean.Clean(asString(item["location"])),
			Quantity:    textclean.Clean(asString(item["quantity"])),
			Unit:        textclean.Clean(asString(item["unit"])),
		}
		if a.Description == "" {
			continue
		}
		out = append(out, a)
	}
	for i := range out {
		out[i].SN = i + 1
	}
	return out
}

func normalizeEquipment(items []map[string]any) []Equipment {
	var out []Equipment
	seen := map[string]struct{}{}
	for i, item := range items {
		e := Equipment{
			SN:             snOrPosition(item["sn"], i),
			Equipment:      textclean.Clean(asString(item["equipment"])),
			No:             textclean.Clean(asString(item["no"])),
			OperatingHours: textclean.Clean(asString(item["operating_hours"])),
			IdleHours:      textclean.Clean(asString(item["idle_hours"])),
			Status:         textclean.Clean(asString(item["status"])),
			Remarks:        textclean.Clean(asString(item["remarks"])),
		}
		// dedupe by normalized plate/ID number: first occurrence wins
		if no := normalizeEquipmentNo(e.No); no != "" {
			if _, dup := seen[no]; dup {
				continue
			}
			seen[no] = struct{}{}
		}
		if e.Equipment == "" && e.No == "" && e.OperatingHours == "" &&
			e.IdleHours == "" && e.Status == "" && e.Remarks == "" {
			continue
		}
		out = append(out, e)
	}
	for i := range out {
		out[i].SN = i + 1
	}
	return out
}

func normalizeEquipmentNo(no string) string {
	return reNonSpace.ReplaceAllString(strings.ToUpper(strings.TrimSpace(no)), "")
}

func normalizePersonnel(items []map[string]any) []Personnel {
	var out []Personnel
	for i, item := range items {
		p := Personnel{
			SN:        snOrPosition(item["sn"], i),
			Personnel: textclean.Clean(asString(item["personnel"])),
			No:        textclean.Clean(asString(item["no"])),
			Hours:     textclean.Clean(asString(item["hours"])),
			Role:      textclean.Clean(asString(item["role"])),
		}
		if p.Personnel == "" && p.No == "" && p.Hours == "" && p.Role == "" {
			continue
		}
		out = append(out, p)
	}
	for i := range out {
		out[i].SN = i + 1
	}
	return out
}

func normalizeMaterials(items []map[string]any) []Material {
	var out []Material
	for _, item := range items {
		m := Material{
			Type:     textclean.Clean(asString(item["type"])),
			Unit:     textclean.Clean(asString(item["unit"])),
			Quantity: textclean.Clean(asString(item["quantity"])),
			Location: textclean.Clean(asString(item["location"])),
		}
		if m.Type == "" && m.Unit == "" && m.Quantity == "" && m.Location == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func normalizeUnsafeActs(items []map[string]any) []UnsafeAct {
	var out []UnsafeAct
	for i, item := range items {
		u := UnsafeAct{
			SN:          snOrPosition(item["sn"], i),
			Description: textclean.Clean(asString(item["description"])),
			Severity:    textclean.Clean(asString(item["severity"])),
			ActionTaken: textclean.Clean(asString(item["action_taken"])),
		}
		if u.Description == "" {
			continue
		}
		out = append(out, u)
	}
	for i := range out {
		out[i].SN = i + 1
	}
	return out
}

func snOrPosition(v any, pos int) int {
	if n := asInt(v); n > 0 {
		return n
	}
	return pos + 1
}
