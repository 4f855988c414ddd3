// File: database/repository/business/mapper.go
package businessRepo

import (
	"fmt"
	"sort"
	"time"

	"barberhub/config"
	"barberhub/models"
)

// Backend opening-hours maps are keyed by weekday abbreviations; the UI
// works with full weekday names. Order matters for chart and form rendering.
var backendDays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var dayNames = map[string]string{
	"mon": "monday",
	"tue": "tuesday",
	"wed": "wednesday",
	"thu": "thursday",
	"fri": "friday",
	"sat": "saturday",
	"sun": "sunday",
}

var dayAbbrevs = map[string]string{
	"monday":    "mon",
	"tuesday":   "tue",
	"wednesday": "wed",
	"thursday":  "thu",
	"friday":    "fri",
	"saturday":  "sat",
	"sunday":    "sun",
}

// Default editing window kept on closed days so the hours form has
// something sensible to show when a day is reopened.
const (
	defaultOpenTime  = "09:00"
	defaultCloseTime = "18:00"
)

func defaultCity() string {
	if config.AppConfig.DefaultCity != "" {
		return config.AppConfig.DefaultCity
	}
	return "Toronto"
}

func defaultProvince() string {
	if config.AppConfig.DefaultProvince != "" {
		return config.AppConfig.DefaultProvince
	}
	return "Ontario"
}

// stringField returns the first present key's value as a string. Later keys
// are legacy names still found on older records.
func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func floatField(raw map[string]any, keys ...string) float64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return 0
}

func boolField(raw map[string]any, key string) bool {
	if v, ok := raw[key].(bool); ok {
		return v
	}
	return false
}

// timeField tolerates both RFC3339 strings and unix-millisecond numbers,
// the two timestamp encodings found in stored records.
func timeField(raw map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
		case float64:
			if v > 0 {
				return time.UnixMilli(int64(v)).UTC()
			}
		}
	}
	return time.Time{}
}

func subMap(raw map[string]any, key string) map[string]any {
	if v, ok := raw[key].(map[string]any); ok {
		return v
	}
	return nil
}

// MapToView reconciles a raw backend record into the stable BusinessView
// shape. It never fails: absent or malformed fields get documented defaults
// so the UI always has something renderable.
func MapToView(id string, raw map[string]any) models.BusinessView {
	if raw == nil {
		raw = map[string]any{}
	}

	view := models.BusinessView{
		ID:               id,
		Name:             stringField(raw, "name", "businessName"),
		Address:          stringField(raw, "address"),
		City:             stringField(raw, "city"),
		Province:         stringField(raw, "province", "state"),
		Latitude:         floatField(raw, "latitude", "lat"),
		Longitude:        floatField(raw, "longitude", "lng"),
		Email:            stringField(raw, "email", "contactEmail"),
		Phone:            stringField(raw, "phone", "phoneNumber"),
		Website:          stringField(raw, "website"),
		Description:      stringField(raw, "description"),
		ProfileImage:     stringField(raw, "profileImage"),
		CoverImage:       stringField(raw, "coverImage"),
		SubscriptionPlan: stringField(raw, "subscriptionPlan", "plan"),
		Status:           stringField(raw, "status"),
		CreatedAt:        timeField(raw, "createdAt"),
		UpdatedAt:        timeField(raw, "updatedAt"),
	}

	if view.City == "" {
		view.City = defaultCity()
	}
	if view.Province == "" {
		view.Province = defaultProvince()
	}
	if view.Status == "" {
		view.Status = models.BusinessStatusActive
	}

	view.OpeningHours = mapHoursToView(subMap(raw, "openingHours"))
	view.Services = mapServicesToView(subMap(raw, "services"))
	view.Staff = mapStaffToView(subMap(raw, "staff"))
	view.ServiceCount = len(view.Services)
	view.StaffCount = len(view.Staff)
	return view
}

// mapHoursToView expands abbreviated weekday keys to full names and marks
// absent days closed, keeping the default window for editing convenience.
func mapHoursToView(hours map[string]any) map[string]models.DayHours {
	out := make(map[string]models.DayHours, len(backendDays))
	for _, abbrev := range backendDays {
		day := dayNames[abbrev]
		entry, ok := hours[abbrev].(map[string]any)
		if !ok {
			out[day] = models.DayHours{Open: defaultOpenTime, Close: defaultCloseTime, Closed: true}
			continue
		}
		dh := models.DayHours{
			Open:   stringField(entry, "open"),
			Close:  stringField(entry, "close"),
			Closed: boolField(entry, "closed"),
		}
		if dh.Open == "" {
			dh.Open = defaultOpenTime
		}
		if dh.Close == "" {
			dh.Close = defaultCloseTime
		}
		out[day] = dh
	}
	return out
}

// mapServicesToView flattens the backend's keyed services map into an
// ordered list. Keys are sorted so the order is stable across backends.
func mapServicesToView(services map[string]any) []models.ServiceItem {
	keys := sortedKeys(services)
	out := make([]models.ServiceItem, 0, len(keys))
	for _, key := range keys {
		entry, ok := services[key].(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.ServiceItem{
			ID:          key,
			Title:       stringField(entry, "title", "name"),
			Price:       floatField(entry, "price"),
			Duration:    int(floatField(entry, "duration")),
			Description: stringField(entry, "description"),
		})
	}
	return out
}

func mapStaffToView(staff map[string]any) []models.StaffMember {
	keys := sortedKeys(staff)
	out := make([]models.StaffMember, 0, len(keys))
	for _, key := range keys {
		entry, ok := staff[key].(map[string]any)
		if !ok {
			continue
		}
		member := models.StaffMember{
			ID:     key,
			Name:   stringField(entry, "name"),
			Avatar: stringField(entry, "avatar"),
			Rating: floatField(entry, "rating"),
		}
		if raw, ok := entry["specialties"].([]any); ok {
			for _, s := range raw {
				if str, ok := s.(string); ok {
					member.Specialties = append(member.Specialties, str)
				}
			}
		}
		out = append(out, member)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MapToPayload builds the flat backend update payload from a view-model.
// Full weekday names collapse back to abbreviations, closed days are
// omitted entirely, and display-only aggregates are not written.
func MapToPayload(view *models.BusinessView) map[string]any {
	now := time.Now().UTC()
	payload := map[string]any{
		"name":             view.Name,
		"address":          view.Address,
		"city":             view.City,
		"province":         view.Province,
		"latitude":         view.Latitude,
		"longitude":        view.Longitude,
		"email":            view.Email,
		"phone":            view.Phone,
		"website":          view.Website,
		"description":      view.Description,
		"profileImage":     view.ProfileImage,
		"coverImage":       view.CoverImage,
		"subscriptionPlan": view.SubscriptionPlan,
		"status":           view.Status,
		"updatedAt":        now.Format(time.RFC3339),
	}
	if !view.CreatedAt.IsZero() {
		payload["createdAt"] = view.CreatedAt.UTC().Format(time.RFC3339)
	}

	hours := make(map[string]any)
	for day, dh := range view.OpeningHours {
		abbrev, ok := dayAbbrevs[day]
		if !ok || dh.Closed {
			continue
		}
		hours[abbrev] = map[string]any{
			"open":  dh.Open,
			"close": dh.Close,
		}
	}
	payload["openingHours"] = hours

	payload["services"] = mapServicesToPayload(view.Services, now)
	payload["staff"] = mapStaffToPayload(view.Staff, now)
	return payload
}

func syntheticKey(prefix string, index int, now time.Time) string {
	return fmt.Sprintf("%s%d_%d", prefix, index, now.Unix())
}

func mapServicesToPayload(services []models.ServiceItem, now time.Time) map[string]any {
	out := make(map[string]any, len(services))
	for i, svc := range services {
		key := svc.ID
		if key == "" {
			key = syntheticKey("svc", i, now)
		}
		out[key] = map[string]any{
			"title":       svc.Title,
			"price":       svc.Price,
			"duration":    svc.Duration,
			"description": svc.Description,
		}
	}
	return out
}

func mapStaffToPayload(staff []models.StaffMember, now time.Time) map[string]any {
	out := make(map[string]any, len(staff))
	for i, member := range staff {
		key := member.ID
		if key == "" {
			key = syntheticKey("stf", i, now)
		}
		entry := map[string]any{
			"name":   member.Name,
			"avatar": member.Avatar,
			"rating": member.Rating,
		}
		if len(member.Specialties) > 0 {
			entry["specialties"] = member.Specialties
		}
		out[key] = entry
	}
	return out
}
