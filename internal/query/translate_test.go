package query

import (
	"testing"

	"jenjangkarir/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateJobsLocationAndJobType(t *testing.T) {
	st := filter.State{
		filter.KeyLocation: {"Jakarta", "Bandung"},
		filter.KeyJobType:  {"full-time"},
	}

	first := Translate(Jobs, st)
	want := []Predicate{
		Eq(FieldStatus, StatusActive),
		Or(ILike(FieldLocation, "Jakarta"), ILike(FieldLocation, "Bandung")),
		Eq(FieldJobType, "full-time"),
	}
	assert.Equal(t, want, first.Predicates)

	for i := 0; i < 20; i++ {
		again := Translate(Jobs, st.Clone())
		require.Equal(t, first.Describe(), again.Describe())
	}
	assert.Equal(t,
		"jobs;eq(status,active);or(ilike(location,%Jakarta%),ilike(location,%Bandung%));eq(job_type,full-time);order=posted_at.desc;order=id.desc",
		first.Describe())
}

func TestTranslateSingleLocationIsPlainMatch(t *testing.T) {
	plan := Translate(Companies, filter.State{filter.KeyLocation: {"Remote"}})
	assert.Equal(t, []Predicate{ILike(FieldLocation, "Remote")}, plan.Predicates)
}

func TestTranslateMultiValueMembership(t *testing.T) {
	plan := Translate(Jobs, filter.State{
		filter.KeyJobType:  {"full-time", "contract"},
		filter.KeyCategory: {"4"},
	})
	assert.Equal(t, []Predicate{
		Eq(FieldStatus, StatusActive),
		In(FieldJobType, []string{"full-time", "contract"}),
		Eq(FieldCategoryID, "4"),
	}, plan.Predicates)

	companies := Translate(Companies, filter.State{
		filter.KeyCompanySize: {"1-10", "11-50"},
		filter.KeyCategory:    {"fintech"},
	})
	assert.Equal(t, []Predicate{
		Eq(FieldIndustry, "fintech"),
		In(FieldSize, []string{"1-10", "11-50"}),
	}, companies.Predicates)
}

func TestTranslateQueryPerCollection(t *testing.T) {
	st := filter.State{filter.KeyQuery: {"golang"}}

	assert.Equal(t, Or(ILike(FieldTitle, "golang"), ILike(FieldCompanyName, "golang")), Translate(Jobs, st).Predicates[1])
	assert.Equal(t, []Predicate{ILike(FieldName, "golang")}, Translate(Companies, st).Predicates)
	assert.Equal(t, []Predicate{ILike(FieldTitle, "golang")}, Translate(Articles, st).Predicates)
}

func TestTranslateSalaryScalesAndIgnoresGarbage(t *testing.T) {
	plan := Translate(Jobs, filter.State{
		filter.KeySalaryMin: {"5"},
		filter.KeySalaryMax: {"12,5"},
	})
	assert.Equal(t, []Predicate{
		Eq(FieldStatus, StatusActive),
		Gte(FieldSalaryMin, 5_000_000),
		Lte(FieldSalaryMax, 12_500_000),
	}, plan.Predicates)

	bad := Translate(Jobs, filter.State{
		filter.KeySalaryMin: {"lima"},
		filter.KeySalaryMax: {"-3"},
	})
	assert.Equal(t, []Predicate{Eq(FieldStatus, StatusActive)}, bad.Predicates)

	nan := Translate(Jobs, filter.Parse("salary_min=NaN&salary_max=nan"))
	assert.Equal(t, []Predicate{Eq(FieldStatus, StatusActive)}, nan.Predicates)
}

func TestTranslateIgnoresUnknownAndStatusKeys(t *testing.T) {
	plan := Translate(Jobs, filter.State{
		"status":              {"closed"},
		"remote_only":         {"1"},
		filter.KeyCompanySize: {"1-10"},
		filter.KeyPage:        {"3"},
	})
	assert.Equal(t, []Predicate{Eq(FieldStatus, StatusActive)}, plan.Predicates)
}

func TestSortOrderAlwaysTieBreaksOnID(t *testing.T) {
	cases := []struct {
		c    Collection
		sort string
		want []Order
	}{
		{Jobs, "", []Order{{FieldPostedAt, false}, {FieldID, false}}},
		{Jobs, "salary_low", []Order{{FieldSalaryMin, true}, {FieldID, true}}},
		{Jobs, "bogus", []Order{{FieldPostedAt, false}, {FieldID, false}}},
		{Companies, "", []Order{{FieldName, true}, {FieldID, true}}},
		{Articles, "oldest", []Order{{FieldPublishedAt, true}, {FieldID, true}}},
	}
	for _, c := range cases {
		got := Translate(c.c, filter.State{filter.KeySort: {c.sort}})
		assert.Equal(t, c.want, got.Order, "%s sort=%q", c.c, c.sort)
	}
}

func TestCollectionFor(t *testing.T) {
	assert.Equal(t, Jobs, CollectionFor(filter.TypeJob))
	assert.Equal(t, Companies, CollectionFor(filter.TypeCompany))
	assert.Equal(t, Articles, CollectionFor(filter.TypeArticle))
}
