package diary

// ToMap converts the record to plain scalars, lists, and maps. It is the
// wire/persistence form consumed by the review UI; FromMap inverts it
// without loss.
func (d Diary) ToMap() map[string]any {
	activities := make([]map[string]any, 0, len(d.Activities))
	for _, a := range d.Activities {
		activities = append(activities, map[string]any{
			"sn":          a.SN,
			"description": a.Description,
			"location":    a.Location,
			"quantity":    a.Quantity,
			"unit":        a.Unit,
		})
	}
	equipment := make([]map[string]any, 0, len(d.Equipment))
	for _, e := range d.Equipment {
		equipment = append(equipment, map[string]any{
			"sn":              e.SN,
			"equipment":       e.Equipment,
			"no":              e.No,
			"operating_hours": e.OperatingHours,
			"idle_hours":      e.IdleHours,
			"status":          e.Status,
			"remarks":         e.Remarks,
		})
	}
	personnel := make([]map[string]any, 0, len(d.Personnel))
	for _, p := range d.Personnel {
		personnel = append(personnel, map[string]any{
			"sn":        p.SN,
			"personnel": p.Personnel,
			"no":        p.No,
			"hours":     p.Hours,
			"role":      p.Role,
		})
	}
	materials := make([]map[string]any, 0, len(d.Materials))
	for _, m := range d.Materials {
		materials = append(materials, map[string]any{
			"type":     m.Type,
			"unit":     m.Unit,
			"quantity": m.Quantity,
			"location": m.Location,
		})
	}
	unsafeActs := make([]map[string]any, 0, len(d.UnsafeActs))
	for _, u := range d.UnsafeActs {
		unsafeActs = append(unsafeActs, map[string]any{
			"sn":           u.SN,
			"description":  u.Description,
			"severity":     u.Severity,
			"action_taken": u.ActionTaken,
		})
	}

	return map[string]any{
		"project":         d.Project,
		"employer":        d.Employer,
		"consultant":      d.Consultant,
		"contractor":      d.Contractor,
		"date":            d.Date,
		"time_morning":    d.TimeMorning,
		"time_afternoon":  d.TimeAfternoon,
		"location":        d.Location,
		"weather":         d.Weather,
		"activities":      activities,
		"equipment":       equipment,
		"personnel":       personnel,
		"materials":       materials,
		"unsafe_acts":     unsafeActs,
		"near_miss":       d.NearMiss,
		"obstruction":     d.Obstruction,
		"engineers_note":  d.EngineersNote,
		"prepared_by":     d.PreparedBy,
		"checked_by":      d.CheckedBy,
		"approved_by":     d.ApprovedBy,
		"document_number": d.DocumentNumber,
		"page_number":     d.PageNumber,
		"revision":        d.Revision,
	}
}

// FromMap rebuilds a record from its map form. Missing keys take their
// zero/default values; unknown keys are ignored.
func FromMap(data map[string]any) Diary {
	d := Diary{
		Project:        asString(data["project"]),
		Employer:       asString(data["employer"]),
		Consultant:     asString(data["consultant"]),
		Contractor:     asString(data["contractor"]),
		Date:           asString(data["date"]),
		TimeMorning:    asBool(data["time_morning"]),
		TimeAfternoon:  asBool(data["time_afternoon"]),
		Location:       asString(data["location"]),
		Weather:        asString(data["weather"]),
		NearMiss:       asString(data["near_miss"]),
		Obstruction:    asString(data["obstruction"]),
		EngineersNote:  asString(data["engineers_note"]),
		PreparedBy:     asString(data["prepared_by"]),
		CheckedBy:      asString(data["checked_by"]),
		ApprovedBy:     asString(data["approved_by"]),
		DocumentNumber: asString(data["document_number"]),
		PageNumber:     asString(data["page_number"]),
		Revision:       asString(data["revision"]),
	}
	if d.Weather == "" {
		d.Weather = New().Weather
	}

	for _, item := range asMapSlice(data["activities"]) {
		d.Activities = append(d.Activities, Activity{
			SN:          asInt(item["sn"]),
			Description: asString(item["description"]),
			Location:    asString(item["location"]),
			Quantity:    asString(item["quantity"]),
			Unit:        asString(item["unit"]),
		})
	}
	for _, item := range asMapSlice(data["equipment"]) {
		d.Equipment = append(d.Equipment, Equipment{
			SN:             asInt(item["sn"]),
			Equipment:      asString(item["equipment"]),
			No:             asString(item["no"]),
			OperatingHours: asString(item["operating_hours"]),
			IdleHours:      asString(item["idle_hours"]),
			Status:         asString(item["status"]),
			Remarks:        asString(item["remarks"]),
		})
	}
	for _, item := range asMapSlice(data["personnel"]) {
		d.Personnel = append(d.Personnel, Personnel{
			SN:        asInt(item["sn"]),
			Personnel: asString(item["personnel"]),
			No:        asString(item["no"]),
			Hours:     asString(item["hours"]),
			Role:      asString(item["role"]),
		})
	}
	for _, item := range asMapSlice(data["materials"]) {
		d.Materials = append(d.Materials, Material{
			Type:     asString(item["type"]),
			Unit:     asString(item["unit"]),
			Quantity: asString(item["quantity"]),
			Location: asString(item["location"]),
		})
	}
	for _, item := range asMapSlice(data["unsafe_acts"]) {
		d.UnsafeActs = append(d.UnsafeActs, UnsafeAct{
			SN:          asInt(item["sn"]),
			Description: asString(item["description"]),
			Severity:    asString(item["severity"]),
			ActionTaken: asString(item["action_taken"]),
		})
	}
	return d
}
