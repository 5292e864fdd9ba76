package llm

import "strings"

// recordShape is the literal JSON shape embedded in the extraction prompt.
// Field names and nesting must match the diary record exactly; the model is
// told to mirror this object.
const recordShape = `{
    "project": "project name or description",
    "employer": "employer/client name",
    "consultant": "consultant company name",
    "contractor": "contractor company name",
    "date": "date in DD-MM-YYYY format",
    "time_morning": true,
    "time_afternoon": false,
    "location": "work location or site location",
    "weather": "weather condition (e.g., Sunny/Dry, Rainy, Cloudy)",
    "activities": [
        {
            "sn": 1,
            "description": "activity description",
            "location": "specific location if mentioned",
            "quantity": "quantity if mentioned",
            "unit": "unit if mentioned"
        }
    ],
    "equipment": [
        {
            "sn": 1,
            "equipment": "equipment name/type",
            "no": "equipment number/ID",
            "operating_hours": "hours if mentioned",
            "idle_hours": "idle hours if mentioned",
            "status": "working status",
            "remarks": "any remarks"
        }
    ],
    "personnel": [
        {
            "sn": 1,
            "personnel": "personnel type/role",
            "no": "number of personnel",
            "hours": "working hours if mentioned",
            "role": "specific role description"
        }
    ],
    "materials": [
        {
            "type": "material type",
            "unit": "unit of measurement",
            "quantity": "quantity used",
            "location": "where used"
        }
    ],
    "unsafe_acts": [
        {
            "sn": 1,
            "description": "description of unsafe act or condition",
            "severity": "severity level if mentioned",
            "action_taken": "corrective action if mentioned"
        }
    ],
    "near_miss": "near miss incidents description",
    "obstruction": "any obstructions or delays",
    "engineers_note": "engineer's notes or remarks",
    "prepared_by": "person who prepared the report",
    "checked_by": "person who checked the report",
    "approved_by": "person who approved the report",
    "document_number": "document number if available",
    "page_number": "page number if available",
    "revision": "revision number if available"
}`

// BuildExtractionPrompt composes the single-shot extraction prompt: the raw
// site-report text, the literal record shape, and the extraction rules. The
// model gets exactly one request; there is no multi-turn negotiation.
func BuildExtractionPrompt(rawText string) string {
	var b strings.Builder
	b.WriteString("You are an expert data extraction specialist for construction site reports. ")
	b.WriteString("Extract structured information from the following site report text and return it as a JSON object.\n\n")
	b.WriteString("SITE REPORT TEXT:\n")
	b.WriteString(rawText)
	b.WriteString("\n\nExtract the following information and return it as a valid JSON object with these exact keys:\n\n")
	b.WriteString(recordShape)
	b.WriteString("\n\nEXTRACTION RULES:\n")
	b.WriteString("1. Extract information accurately from the provided text\n")
	b.WriteString("2. If information is not available, use empty string \"\" for text fields, empty array [] for lists, and false for boolean fields\n")
	b.WriteString("3. For dates, convert to DD-MM-YYYY format\n")
	b.WriteString("4. For activities, equipment, personnel - extract as many items as mentioned in the text\n")
	b.WriteString("5. Assign sequential serial numbers (sn) starting from 1\n")
	b.WriteString("6. For time_morning/time_afternoon, determine from context (morning/afternoon shifts, AM/PM times)\n")
	b.WriteString("7. Preserve original language and terminology from the source text\n")
	b.WriteString("8. IMPORTANT: Ensure proper word spacing in descriptions (e.g., \"loading material\" not \"loadingmaterial\", \"concrete work\" not \"concretework\")\n")
	b.WriteString("9. When extracting activities and descriptions, maintain natural word boundaries and spacing\n")
	b.WriteString("10. Return only valid JSON without any additional text or explanation\n\n")
	b.WriteString("RESPOND WITH JSON ONLY:\n")
	return b.String()
}
