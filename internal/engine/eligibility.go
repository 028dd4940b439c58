package engine

// Filter returns the items whose age range and criterion match the profile,
// preserving declaration order. It has no side effects.
func Filter(items []Item, age int, sex Sex, smoker SmokerStatus) []Item {
	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if item.AgeRange.Contains(age) && item.Criterion.SatisfiedBy(sex, smoker) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Contains reports whether age lies in the range. An unbounded range uses the
// subject's own age as its upper bound, so the upper comparison always holds.
func (r AgeRange) Contains(age int) bool {
	a := float64(age)
	upper := r.Max
	if r.Unbounded {
		upper = a
	}
	return a >= r.Min && a <= upper
}

// SatisfiedBy reports whether the criterion holds for the given sex and smoking status.
// Unknown criterion values are never satisfied.
func (c Criterion) SatisfiedBy(sex Sex, smoker SmokerStatus) bool {
	switch c {
	case CriterionNone:
		return true
	case CriterionFemale:
		return sex == SexFemale
	case CriterionSmoker:
		return smoker == SmokerYes
	case CriterionMaleSmoker:
		return sex == SexMale && smoker == SmokerYes
	}
	return false
}
