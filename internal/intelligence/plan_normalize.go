package intelligence

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/llm"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/scheduler"
)

// rawItem is one model-proposed plan entry before coercion. Models are loose
// about types, so every field is decoded as an arbitrary JSON value.
type rawItem map[string]any

// NormalizePlan turns raw model text into plan items: it extracts the first
// JSON array of objects, coerces every field, assigns fresh ids and pending
// status, replaces malformed times with now, and sorts by time.
func NormalizePlan(raw string, now clock.Time, newID scheduler.IDSource) ([]domain.PlanItem, error) {
	rawItems, err := llm.ExtractJSONArray[rawItem](raw)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return nil, planner.ErrEmptyPlan
	}

	items := make([]domain.PlanItem, 0, len(rawItems))
	for _, r := range rawItems {
		items = append(items, r.toPlanItem(now, newID()))
	}
	scheduler.SortByTime(items)
	return items, nil
}

func (r rawItem) toPlanItem(now clock.Time, id string) domain.PlanItem {
	itemType := domain.ItemActivity
	if t, ok := r["type"].(string); ok && domain.ValidItemTypes[t] {
		itemType = domain.ItemType(t)
	}

	at := textField(r["time"], "")
	if !clock.Valid(at) {
		at = now.String()
	}

	return domain.PlanItem{
		ID:          id,
		Type:        itemType,
		Title:       textField(r["title"], "Activity"),
		Description: textField(r["description"], ""),
		Time:        at,
		Category:    string(itemType),
		Tags:        tagsField(r["tags"]),
		Status:      domain.StatusPending,
		IsGentle:    truthy(r["isGentle"]),
	}
}

// textField renders a scalar as text, using fallback for empty or falsy values.
func textField(v any, fallback string) string {
	switch x := v.(type) {
	case nil:
		return fallback
	case string:
		if x == "" {
			return fallback
		}
		return x
	case bool:
		if !x {
			return fallback
		}
		return "true"
	case float64:
		if x == 0 {
			return fallback
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func tagsField(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(list))
	for _, t := range list {
		switch x := t.(type) {
		case string:
			tags = append(tags, x)
		case float64:
			tags = append(tags, strconv.FormatFloat(x, 'f', -1, 64))
		case nil:
			tags = append(tags, "null")
		default:
			tags = append(tags, fmt.Sprint(x))
		}
	}
	return tags
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
