package query

import (
	"math"
	"strconv"
	"strings"

	"jenjangkarir/internal/filter"
)

// SalaryUnit converts the salary filter unit (millions of rupiah) to the
// stored unit.
const SalaryUnit int64 = 1_000_000

// StatusActive is the only job status ever listed publicly.
const StatusActive = "active"

// Logical field names understood by the repositories.
const (
	FieldStatus      = "status"
	FieldTitle       = "title"
	FieldName        = "name"
	FieldCompanyName = "company_name"
	FieldLocation    = "location"
	FieldJobType     = "job_type"
	FieldCategoryID  = "category_id"
	FieldIndustry    = "industry"
	FieldSize        = "size"
	FieldCategory    = "category"
	FieldSalaryMin   = "salary_min"
	FieldSalaryMax   = "salary_max"
	FieldPostedAt    = "posted_at"
	FieldCreatedAt   = "created_at"
	FieldPublishedAt = "published_at"
	FieldID          = "id"
)

// CollectionFor maps a provider filter type to its collection.
func CollectionFor(ft filter.FilterType) Collection {
	switch ft {
	case filter.TypeCompany:
		return Companies
	case filter.TypeArticle:
		return Articles
	default:
		return Jobs
	}
}

// Translate turns a filter state into an ordered predicate list plus ordering
// for collection. It is pure: the same input always yields an equal Plan.
// Keys the collection does not understand are ignored.
func Translate(c Collection, st filter.State) Plan {
	plan := Plan{Collection: c}
	add := func(p Predicate) { plan.Predicates = append(plan.Predicates, p) }

	switch c {
	case Jobs:
		add(Eq(FieldStatus, StatusActive))
		if q := st.Get(filter.KeyQuery); q != "" {
			add(Or(ILike(FieldTitle, q), ILike(FieldCompanyName, q)))
		}
		if p, ok := substringAny(FieldLocation, st.Values(filter.KeyLocation)); ok {
			add(p)
		}
		if p, ok := membership(FieldJobType, st.Values(filter.KeyJobType)); ok {
			add(p)
		}
		if p, ok := membership(FieldCategoryID, st.Values(filter.KeyCategory)); ok {
			add(p)
		}
		if v, ok := salary(st.Get(filter.KeySalaryMin)); ok {
			add(Gte(FieldSalaryMin, v))
		}
		if v, ok := salary(st.Get(filter.KeySalaryMax)); ok {
			add(Lte(FieldSalaryMax, v))
		}

	case Companies:
		if q := st.Get(filter.KeyQuery); q != "" {
			add(ILike(FieldName, q))
		}
		if p, ok := substringAny(FieldLocation, st.Values(filter.KeyLocation)); ok {
			add(p)
		}
		if p, ok := membership(FieldIndustry, st.Values(filter.KeyCategory)); ok {
			add(p)
		}
		if p, ok := membership(FieldSize, st.Values(filter.KeyCompanySize)); ok {
			add(p)
		}

	case Articles:
		if q := st.Get(filter.KeyQuery); q != "" {
			add(ILike(FieldTitle, q))
		}
		if p, ok := membership(FieldCategory, st.Values(filter.KeyCategory)); ok {
			add(p)
		}
	}

	plan.Order = sortOrder(c, st.Get(filter.KeySort))
	return plan
}

// substringAny matches each value independently; several values become an
// OR of single-value matches, never one combined pattern.
func substringAny(field string, values []string) (Predicate, bool) {
	switch len(values) {
	case 0:
		return Predicate{}, false
	case 1:
		return ILike(field, values[0]), true
	}
	preds := make([]Predicate, len(values))
	for i, v := range values {
		preds[i] = ILike(field, v)
	}
	return Or(preds...), true
}

func membership(field string, values []string) (Predicate, bool) {
	switch len(values) {
	case 0:
		return Predicate{}, false
	case 1:
		return Eq(field, values[0]), true
	}
	return In(field, values), true
}

// salary parses a bound given in millions. Anything unparsable or negative is
// dropped so a hand-edited URL cannot break the listing.
func salary(raw string) (int64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > 1e6 {
		return 0, false
	}
	return int64(f * float64(SalaryUnit)), true
}

// sortOrder always ends with id in the same direction so pages never tie.
func sortOrder(c Collection, sort string) []Order {
	sort = strings.ToLower(strings.TrimSpace(sort))
	var primary Order
	switch c {
	case Jobs:
		switch sort {
		case "oldest":
			primary = Order{Field: FieldPostedAt, Ascending: true}
		case "salary_high":
			primary = Order{Field: FieldSalaryMax, Ascending: false}
		case "salary_low":
			primary = Order{Field: FieldSalaryMin, Ascending: true}
		default:
			primary = Order{Field: FieldPostedAt, Ascending: false}
		}
	case Companies:
		switch sort {
		case "newest":
			primary = Order{Field: FieldCreatedAt, Ascending: false}
		default:
			primary = Order{Field: FieldName, Ascending: true}
		}
	case Articles:
		switch sort {
		case "oldest":
			primary = Order{Field: FieldPublishedAt, Ascending: true}
		default:
			primary = Order{Field: FieldPublishedAt, Ascending: false}
		}
	default:
		primary = Order{Field: FieldID, Ascending: false}
		return []Order{primary}
	}
	return []Order{primary, {Field: FieldID, Ascending: primary.Ascending}}
}
